package http

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rupamthxt/faceembed/internal/face"
	"github.com/rupamthxt/faceembed/internal/metrics"
	"github.com/sirupsen/logrus"
)

// EmbeddingExtractor is satisfied by *face.Extractor
type EmbeddingExtractor interface {
	Extract(paths []string) ([]face.Embedding, error)
}

type Handler struct {
	extractor EmbeddingExtractor
	threshold float64
	logger    *logrus.Logger
}

func NewHandler(extractor EmbeddingExtractor, defaultThreshold float64, logger *logrus.Logger) *Handler {
	return &Handler{
		extractor: extractor,
		threshold: defaultThreshold,
		logger:    logger,
	}
}

// Register mounts the service routes on app.
func (h *Handler) Register(app fiber.Router) {
	app.Get("/health", h.Health)
	app.Post("/extract-embeddings", h.ExtractEmbeddings)
	app.Post("/compare-faces", h.CompareFaces)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(HealthResponse{Status: "ok"})
}

func (h *Handler) ExtractEmbeddings(c *fiber.Ctx) error {
	timer := prometheus.NewTimer(metrics.ExtractDuration)
	defer timer.ObserveDuration()

	var req ExtractRequest
	if err := decodeBody(c, &req, face.ErrExtractionFailure); err != nil {
		metrics.ExtractRequests.WithLabelValues(outcome(err)).Inc()
		return h.fail(c, err)
	}

	embeddings, err := h.extractor.Extract(req.ImagePaths)
	if err != nil {
		metrics.ExtractRequests.WithLabelValues(outcome(err)).Inc()
		return h.fail(c, err)
	}

	metrics.ExtractRequests.WithLabelValues(metrics.OutcomeSuccess).Inc()
	metrics.EmbeddingsExtracted.Add(float64(len(embeddings)))

	return c.Status(fiber.StatusOK).JSON(ExtractResponse{
		Success:    true,
		Embeddings: embeddings,
		Count:      len(embeddings),
	})
}

func (h *Handler) CompareFaces(c *fiber.Ctx) error {
	timer := prometheus.NewTimer(metrics.CompareDuration)
	defer timer.ObserveDuration()

	var req CompareRequest
	if err := decodeBody(c, &req, face.ErrComparisonFailure); err != nil {
		metrics.CompareRequests.WithLabelValues(outcome(err)).Inc()
		return h.fail(c, err)
	}

	threshold := h.threshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	result, err := face.Compare(req.ProbeEmbedding, req.GalleryEmbeddings, threshold)
	if err != nil {
		metrics.CompareRequests.WithLabelValues(outcome(err)).Inc()
		return h.fail(c, err)
	}

	metrics.CompareRequests.WithLabelValues(metrics.OutcomeSuccess).Inc()

	return c.Status(fiber.StatusOK).JSON(CompareResponse{
		Success:    true,
		Match:      result.Match,
		Distance:   result.Distance,
		Similarity: result.Similarity,
	})
}

// An empty body decodes to the zero request so that the field checks
// downstream report what is missing. Broken JSON is a bad request; values of
// the wrong type fail the operation as failureKind.
func decodeBody(c *fiber.Ctx, out any, failureKind error) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	err := c.App().Config().JSONDecoder(body, out)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &face.Error{Kind: failureKind, Message: err.Error(), Cause: err}
	}
	return &face.Error{Kind: face.ErrInvalidRequest, Message: "cannot parse json", Cause: err}
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		h.logger.WithError(err).WithField("path", c.Path()).Error("request failed")
	}
	return c.Status(status).JSON(ErrorResponse{Success: false, Error: err.Error()})
}

// StatusFor maps the error taxonomy onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, face.ErrInvalidRequest), errors.Is(err, face.ErrNoFacesDetected):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func outcome(err error) string {
	if StatusFor(err) == fiber.StatusBadRequest {
		return metrics.OutcomeRejected
	}
	return metrics.OutcomeFailed
}

// ErrorHandler renders errors escaping the handlers (recovered panics,
// unknown routes) with the same body as handled failures.
func ErrorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		if status >= fiber.StatusInternalServerError {
			logger.WithError(err).WithField("path", c.Path()).Error("unhandled error")
		}
		return c.Status(status).JSON(ErrorResponse{Success: false, Error: err.Error()})
	}
}
