package face

import "image"

// Dimension is the size of the descriptors produced by the dlib model.
const Dimension = 128

const DefaultThreshold = 0.6

type Embedding []float64

// Face is a single detection returned by a Detector
type Face struct {
	Box       image.Rectangle
	Embedding Embedding
}

// Detector runs face detection and descriptor extraction over encoded image bytes.
// Faces are returned in the detector's own order.
type Detector interface {
	Detect(img []byte) ([]Face, error)
}

type CompareResult struct {
	Match      bool
	Distance   float64
	Similarity float64
}
