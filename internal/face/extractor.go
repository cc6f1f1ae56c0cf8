package face

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rupamthxt/faceembed/internal/metrics"
	"github.com/sirupsen/logrus"
)

type Extractor struct {
	detector Detector
	logger   *logrus.Logger
}

func NewExtractor(detector Detector, logger *logrus.Logger) *Extractor {
	return &Extractor{detector: detector, logger: logger}
}

// Extract returns the first face's embedding for every image that exists and
// contains at least one face, in input order. Missing and faceless images are
// skipped; any other error aborts the whole batch.
func (e *Extractor) Extract(paths []string) ([]Embedding, error) {
	if len(paths) == 0 {
		return nil, newError(ErrInvalidRequest, MsgNoImagePaths)
	}

	embeddings := make([]Embedding, 0, len(paths))

	for _, raw := range paths {
		path := MapPath(raw)

		if _, err := os.Stat(path); err != nil {
			e.logger.WithField("path", path).Warn("file not found, skipping")
			metrics.ImagesSkipped.WithLabelValues(metrics.SkipMissing).Inc()
			continue
		}

		img, err := os.ReadFile(path)
		if err != nil {
			return nil, wrapError(ErrExtractionFailure, err)
		}

		faces, err := e.detect(img)
		if err != nil {
			return nil, wrapError(ErrExtractionFailure, err)
		}

		if len(faces) == 0 {
			e.logger.WithField("path", path).Warn("no face found, skipping")
			metrics.ImagesSkipped.WithLabelValues(metrics.SkipNoFace).Inc()
			continue
		}

		if len(faces) > 1 {
			e.logger.WithFields(logrus.Fields{
				"path":  path,
				"faces": len(faces),
				"box":   faces[0].Box.String(),
			}).Debug("multiple faces found, using the first")
		}

		embeddings = append(embeddings, faces[0].Embedding)
	}

	if len(embeddings) == 0 {
		return nil, newError(ErrNoFacesDetected, MsgNoFacesDetected)
	}

	return embeddings, nil
}

func (e *Extractor) detect(img []byte) ([]Face, error) {
	timer := prometheus.NewTimer(metrics.DetectDuration)
	defer timer.ObserveDuration()

	return e.detector.Detect(img)
}
