package main

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/hupe1980/arsgo"
	"github.com/hupe1980/arsgo/testutil"
)

func main() {
	seed := int64(4711)
	n := 100000

	s, err := arsgo.New(testutil.StdNormalLogPDF, arsgo.Real(), -1, 1,
		arsgo.WithLogDensity(true),
		arsgo.WithRand(testutil.NewRand(seed)),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("--- Sample ---")
	fmt.Println("Density: standard normal")
	fmt.Println("Samples:", n)

	start := time.Now()

	samples, err := s.Run(n)
	if err != nil {
		log.Fatal(err)
	}

	end := time.Since(start)

	fmt.Printf("Seconds: %.3f\n\n", end.Seconds())

	mean, variance := testutil.Moments(samples)
	fmt.Printf("Mean:     %+.4f\n", mean)
	fmt.Printf("Variance: %+.4f\n\n", variance)

	stats := s.Stats()
	fmt.Println("Accepted:", stats.Accepted)
	fmt.Println("Rejected:", stats.Rejected)
	fmt.Println("Envelope segments:", stats.Envelope.Segments)
	fmt.Println()

	printHistogram(samples, -4, 4, 17)
}

func printHistogram(samples []float64, lo, hi float64, bins int) {
	counts := make([]int, bins)
	width := (hi - lo) / float64(bins)

	for _, x := range samples {
		if x < lo || x >= hi {
			continue
		}
		counts[int((x-lo)/width)]++
	}

	maxCount := 0
	for _, c := range counts {
		maxCount = max(maxCount, c)
	}

	for i, c := range counts {
		bars := int(math.Round(50 * float64(c) / float64(maxCount)))
		fmt.Printf("%+5.1f | %s\n", lo+float64(i)*width, strings.Repeat("#", bars))
	}
}
