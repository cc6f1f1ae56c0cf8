package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Skip reasons for images that contribute nothing to a batch
const (
	SkipMissing = "missing"
	SkipNoFace  = "no_face"
)

var (
	// 1. Throughput (Counters)
	ExtractRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "faceembed_extract_requests_total",
		Help: "Total number of extract-embeddings requests by outcome",
	}, []string{"outcome"})

	CompareRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "faceembed_compare_requests_total",
		Help: "Total number of compare-faces requests by outcome",
	}, []string{"outcome"})

	EmbeddingsExtracted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "faceembed_embeddings_extracted_total",
		Help: "Total number of embeddings returned to callers",
	})

	ImagesSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "faceembed_images_skipped_total",
		Help: "Images skipped during extraction, by reason",
	}, []string{"reason"})

	// 2. Latency (Histograms)
	ExtractDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "faceembed_extract_duration_seconds",
		Help:    "Time taken to process extract-embeddings requests",
		Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30}, // dlib inference is slow, CNN even more so
	})

	CompareDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "faceembed_compare_duration_seconds",
		Help:    "Time taken to process compare-faces requests",
		Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
	})

	DetectDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "faceembed_detect_duration_seconds",
		Help:    "Time spent inside the native detector per image",
		Buckets: prometheus.DefBuckets,
	})
)
