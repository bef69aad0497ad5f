package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"pbr-kernels/internal/brdf"
	"pbr-kernels/internal/integrator"
	"pbr-kernels/internal/logging"
	"pbr-kernels/internal/mathutil"
)

func main() {
	albedo := flag.Float64("albedo", 1.0, "Gray albedo")
	metallic := flag.Float64("metallic", 0.5, "Metallic weight")
	roughness := flag.Float64("roughness", 0.5, "Perceptual roughness")
	clearcoat := flag.Float64("clearcoat", 0.2, "Clearcoat weight")
	coatRoughness := flag.Float64("clearcoat-roughness", 0.1, "Clearcoat roughness")
	sheen := flag.Float64("sheen", 0.3, "Sheen weight")
	samples := flag.Int("samples", 10000, "Number of hemisphere samples")
	seed := flag.Int64("seed", 1, "Random seed")
	workers := flag.Int("workers", 1, "Worker goroutines (0: NumCPU)")
	maxRefl := flag.Float64("max", 0, "Exit with status 2 when the estimate exceeds this bound (0: no check)")
	rgb := flag.Bool("rgb", false, "Also print the per-channel estimate")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	m := brdf.Material{
		Albedo:             mathutil.Gray(*albedo),
		Metallic:           *metallic,
		Roughness:          *roughness,
		Clearcoat:          *clearcoat,
		ClearcoatRoughness: *coatRoughness,
		Sheen:              *sheen,
	}
	if err := m.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	m = m.Clamped()

	if *workers <= 0 {
		*workers = runtime.NumCPU()
	}

	up := mathutil.Vec3{0, 1, 0}
	est, err := integrator.EstimateReflectance(context.Background(), up, up, m, integrator.Options{
		Samples: *samples,
		Seed:    *seed,
		Workers: *workers,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Estimated reflectance: %v\n", est.Luminance)
	if *rgb {
		fmt.Printf("Per channel: %.6f %.6f %.6f\n", est.RGB[0], est.RGB[1], est.RGB[2])
	}

	if *maxRefl > 0 && est.Luminance > *maxRefl {
		fmt.Fprintf(os.Stderr, "Estimate %.6f exceeds bound %.6f\n", est.Luminance, *maxRefl)
		os.Exit(2)
	}
}
