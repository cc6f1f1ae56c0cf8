package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/rupamthxt/faceembed/pkg/client"
	"golang.org/x/sync/errgroup"
)

const (
	HealthCount  = 2_000
	CompareCount = 10_000 // High volume to test the pure compute path
	GallerySize  = 20     // Roughly what a user enrolls
	Dimension    = 128
)

func main() {
	baseURL := flag.String("url", client.DefaultBaseURL, "faceembed base URL")
	concurrency := flag.Int("c", 10, "concurrent workers")
	flag.Parse()

	fmt.Println("🔥 Starting faceembed HTTP Load Generator")
	fmt.Printf("Target: %s | Workers: %d\n", *baseURL, *concurrency)

	c := client.New(*baseURL, client.WithBreaker(5*time.Second, 50))
	ctx := context.Background()

	// --- Phase 1: Liveness ---
	fmt.Println("\n💓 Phase 1: Health...")
	runTest("health", HealthCount, *concurrency, func(workerID, i int) error {
		return c.Health(ctx)
	})

	// --- Phase 2: Compare ---
	fmt.Println("\n🔍 Phase 2: Compare (random probes vs random galleries)...")
	var matches atomic.Int64
	runTest("compare", CompareCount, *concurrency, func(workerID, i int) error {
		gallery := make([]client.Embedding, GallerySize)
		for g := range gallery {
			gallery[g] = randomVector(Dimension)
		}
		res, err := c.CompareFaces(ctx, randomVector(Dimension), gallery, nil)
		if err != nil {
			return err
		}
		if res.Match {
			matches.Add(1)
		}
		return nil
	})
	fmt.Printf("🎯 compare matches: %d/%d\n", matches.Load(), CompareCount)

	fmt.Println("\n✅ Load Test Complete!")
}

// Generic Test Runner to handle Concurrency and Timing
func runTest(name string, totalOps, concurrency int, opFunc func(workerID, i int) error) {
	var g errgroup.Group
	var failures atomic.Int64
	start := time.Now()

	opsPerWorker := totalOps / concurrency

	for w := 0; w < concurrency; w++ {
		workerID := w
		g.Go(func() error {
			for i := 0; i < opsPerWorker; i++ {
				if err := opFunc(workerID, i); err != nil {
					failures.Add(1)
					fmt.Printf("❌ %s error: %v\n", name, err)
				}
			}
			return nil
		})
	}

	_ = g.Wait()
	duration := time.Since(start)
	qps := float64(opsPerWorker*concurrency) / duration.Seconds()

	fmt.Printf("⏱️ %s Duration: %s\n", name, duration)
	fmt.Printf("📈 %s QPS: %.2f (failures: %d)\n", name, qps, failures.Load())
}

// Descriptor values from dlib sit roughly in [-0.25, 0.25]
func randomVector(dim int) client.Embedding {
	vec := make(client.Embedding, dim)
	for i := 0; i < dim; i++ {
		vec[i] = (rand.Float64() - 0.5) / 2
	}
	return vec
}
