package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"pbr-kernels/internal/batch"
	"pbr-kernels/internal/config"
	"pbr-kernels/internal/logging"
	"pbr-kernels/internal/raster"
	"pbr-kernels/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	outputDir := flag.String("output", "", "Output directory (default: <config dir>/previews)")
	size := flag.Int("size", 0, "Preview size in pixels (default: 256)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	samples := flag.Int("samples", 0, "Energy check samples per material (default: 10000)")
	only := flag.String("material", "", "Render only the material with this name")
	sheet := flag.Bool("sheet", true, "Also write sheet.webp with every preview")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir: *outputDir,
		Size:      *size,
		Workers:   *workers,
		Samples:   *samples,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	specs := cfg.Materials
	if *only != "" {
		var filtered []config.MaterialSpec
		for _, m := range specs {
			if m.Name == *only {
				filtered = append(filtered, m)
			}
		}
		specs = filtered
	}
	if len(specs) == 0 {
		fmt.Println("No materials to render.")
		os.Exit(0)
	}

	sphere, err := batch.PrepareSphere(cfg.SphereRings, cfg.SphereSegments)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Material preview → WebP\n")
	fmt.Printf("Materials: %d, Workers: %d, Size: %d (x%d)\n", len(specs), cfg.Workers, cfg.RenderSize, cfg.Supersample)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		OutputDir: cfg.OutputDir,
		Textures:  texture.NewCache(cfg.TextureDir),
		Sphere:    sphere,
		Light: raster.NewLightConfig(cfg.Light.Azimuth, cfg.Light.Elevation,
			cfg.Light.Intensity, cfg.Light.Ambient, cfg.Light.Exposure),
		View:          raster.ViewMatrix(cfg.ViewYaw, cfg.ViewPitch),
		RenderSize:    cfg.RenderSize,
		Supersample:   cfg.Supersample,
		Workers:       cfg.Workers,
		EnergySamples: cfg.EnergySamples,
		Seed:          cfg.Seed,
	}

	results := batch.Run(ctx, batchCfg, specs)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errs []batch.Result
	for _, r := range results {
		if r.Success {
			success++
			fmt.Printf("  %-20s reflectance %.4f\n", r.Name, r.Reflectance)
		} else {
			failed++
			errs = append(errs, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(specs))

	if len(errs) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(len(errs), 20)
		for _, e := range errs[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if *sheet {
		sheetPath := filepath.Join(cfg.OutputDir, "sheet.webp")
		if ok, err := batch.WriteContactSheet(sheetPath, results, cfg.SheetColumns, cfg.RenderSize); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: sheet write failed: %v\n", err)
		} else if ok {
			fmt.Printf("Sheet: %s\n", sheetPath)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}
