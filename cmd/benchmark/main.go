package main

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/rupamthxt/faceembed/internal/face"
	"golang.org/x/sync/errgroup"
)

const (
	Dimension   = face.Dimension
	GallerySize = 100_000
	NumQueries  = 1000
)

func main() {
	fmt.Println("🔥 Starting faceembed Compare Benchmark (in-process)")
	fmt.Printf("Config: Dim=%d | Gallery=%d | Queries=%d\n", Dimension, GallerySize, NumQueries)

	// --- Phase 1: Gallery ---
	fmt.Println("\n--- Phase 1: Building gallery ---")
	start := time.Now()
	gallery := make([]face.Embedding, GallerySize)
	for i := range gallery {
		gallery[i] = randomVector(Dimension)
	}
	fmt.Printf("✅ Gallery ready: %.2fs\n", time.Since(start).Seconds())

	// --- Phase 2: Sequential ---
	fmt.Println("\n--- Phase 2: Sequential compare ---")
	startSeq := time.Now()
	seqQueries := NumQueries / 10
	for i := 0; i < seqQueries; i++ {
		if _, err := face.Compare(randomVector(Dimension), gallery, face.DefaultThreshold); err != nil {
			fmt.Printf("❌ compare failed: %v\n", err)
			return
		}
	}
	fmt.Printf("🚀 Sequential QPS: %.2f\n", float64(seqQueries)/time.Since(startSeq).Seconds())

	// --- Phase 3: Concurrent ---
	workers := runtime.NumCPU()
	fmt.Printf("\n--- Phase 3: Concurrent compare (%d workers) ---\n", workers)
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(workers)

	startPar := time.Now()
	for i := 0; i < NumQueries; i++ {
		g.Go(func() error {
			_, err := face.Compare(randomVector(Dimension), gallery, face.DefaultThreshold)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Printf("❌ compare failed: %v\n", err)
		return
	}

	qps := float64(NumQueries) / time.Since(startPar).Seconds()
	fmt.Printf("🚀 Concurrent QPS: %.2f\n", qps)
}

func randomVector(dim int) face.Embedding {
	vec := make(face.Embedding, dim)
	for i := 0; i < dim; i++ {
		vec[i] = (rand.Float64() - 0.5) / 2
	}
	return vec
}
