// Package dlib binds the face.Detector interface to dlib through go-face.
// Building it requires cgo plus the dlib, libjpeg and blas development
// headers; nothing else in the module imports it.
package dlib

import (
	"fmt"
	"sync"

	goface "github.com/Kagami/go-face"
	"github.com/rupamthxt/faceembed/internal/face"
)

type Recognizer struct {
	mu     sync.Mutex
	rec    *goface.Recognizer
	useCNN bool
}

// New loads the shape predictor, the resnet descriptor model and (for CNN
// mode) the mmod detector from modelsDir.
func New(modelsDir string, useCNN bool) (*Recognizer, error) {
	rec, err := goface.NewRecognizer(modelsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load face models from %s: %w", modelsDir, err)
	}
	return &Recognizer{rec: rec, useCNN: useCNN}, nil
}

// Detect is serialized; the underlying dlib objects are not safe for concurrent use.
func (r *Recognizer) Detect(img []byte) ([]face.Face, error) {
	data, err := face.ToJPEG(img)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var found []goface.Face
	if r.useCNN {
		found, err = r.rec.RecognizeCNN(data)
	} else {
		found, err = r.rec.Recognize(data)
	}
	if err != nil {
		return nil, err
	}

	faces := make([]face.Face, 0, len(found))
	for _, f := range found {
		faces = append(faces, face.Face{
			Box:       f.Rectangle,
			Embedding: toEmbedding(f.Descriptor),
		})
	}
	return faces, nil
}

func (r *Recognizer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rec.Close()
}

func toEmbedding(d goface.Descriptor) face.Embedding {
	out := make(face.Embedding, len(d))
	for i, v := range d {
		out[i] = float64(v)
	}
	return out
}
