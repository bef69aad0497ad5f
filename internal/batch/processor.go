package batch

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"pbr-kernels/internal/config"
	"pbr-kernels/internal/integrator"
	"pbr-kernels/internal/logging"
	"pbr-kernels/internal/mathutil"
	"pbr-kernels/internal/mesh"
	"pbr-kernels/internal/postprocess"
	"pbr-kernels/internal/raster"
	"pbr-kernels/internal/texture"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir     string
	Textures      texture.Resolver
	Sphere        *mesh.Mesh // rebuilt once, read-only during the run
	Light         raster.LightConfig
	View          mathutil.Mat3 // zero value means no rotation
	RenderSize    int
	Supersample   int
	Workers       int
	EnergySamples int
	Seed          int64
}

// Result holds the outcome of processing one material.
type Result struct {
	Name        string
	File        string  // relative to OutputDir
	Reflectance float64 // luminance of the hemisphere estimate at normal view
	Success     bool
	Error       string
	Image       image.Image
}

// PrepareSphere builds the shared preview sphere with normals and tangents.
func PrepareSphere(rings, segments int) (*mesh.Mesh, error) {
	m := mesh.UVSphere(rings, segments)
	if err := m.Rebuild(); err != nil {
		return nil, fmt.Errorf("batch: sphere: %w", err)
	}
	return m, nil
}

// Run processes all materials using a worker pool. Materials not yet
// started when ctx is cancelled are reported as failed.
func Run(ctx context.Context, cfg Config, specs []config.MaterialSpec) []Result {
	total := len(specs)
	results := make([]Result, total)
	var processed atomic.Int64
	log := logging.Logger()

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					log.Info("batch: progress", "done", p, "total", total,
						"rate", fmt.Sprintf("%.1f/s", float64(p)/elapsed))
				}
			}
		}
	}()

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	// Worker pool
	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = Result{Name: specs[idx].Name, Error: err.Error()}
				} else {
					results[idx] = processMaterial(ctx, cfg, specs[idx])
				}
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range specs {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	close(done)

	log.Info("batch: finished", "materials", total, "elapsed", time.Since(start).Round(time.Millisecond))
	return results
}

func processMaterial(ctx context.Context, cfg Config, spec config.MaterialSpec) Result {
	fail := func(format string, args ...any) Result {
		return Result{Name: spec.Name, Error: fmt.Sprintf(format, args...)}
	}

	m := spec.Material()
	if err := m.Validate(); err != nil {
		return fail("%v", err)
	}
	surface := raster.Surface{Material: m}

	if spec.AlbedoTexture != "" {
		grid, err := cfg.Textures.Resolve(spec.AlbedoTexture)
		if err != nil {
			return fail("albedo texture: %v", err)
		}
		surface.AlbedoMap = grid
	}
	if spec.NormalTexture != "" {
		grid, err := cfg.Textures.Resolve(spec.NormalTexture)
		if err != nil {
			return fail("normal texture: %v", err)
		}
		surface.NormalMap = grid
	}

	// Render at higher resolution for supersampling
	ss := cfg.Supersample
	if ss < 1 {
		ss = 1
	}
	view := cfg.View
	if view == (mathutil.Mat3{}) {
		view = mathutil.Mat3Identity()
	}
	img, err := raster.RenderMeshView(cfg.Sphere, &surface, &cfg.Light, view, cfg.RenderSize*ss)
	if err != nil {
		return fail("render: %v", err)
	}
	if ss > 1 {
		img = postprocess.Downsample(img, cfg.RenderSize, cfg.RenderSize)
	}

	up := mathutil.Vec3{0, 1, 0}
	est, err := integrator.EstimateReflectance(ctx, up, up, m, integrator.Options{
		Samples: cfg.EnergySamples,
		Seed:    cfg.Seed,
		Workers: 1,
	})
	if err != nil {
		return fail("energy: %v", err)
	}
	if est.Luminance > integrator.PlausibleBound {
		logging.Logger().Warn("batch: reflectance above plausible bound",
			"material", spec.Name, "estimate", est.Luminance)
	}

	// Save as WebP
	file := spec.Name + ".webp"
	if err := writeWebP(filepath.Join(cfg.OutputDir, file), img); err != nil {
		return fail("%v", err)
	}

	return Result{
		Name:        spec.Name,
		File:        file,
		Reflectance: est.Luminance,
		Success:     true,
		Image:       img,
	}
}

func writeWebP(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return fmt.Errorf("WebP encode: %w", err)
	}
	return f.Close()
}
