package batch

import (
	"encoding/json"
	"image"
	"image/color"
	"os"

	"pbr-kernels/internal/postprocess"
)

// ManifestEntry represents one material in the output manifest.
type ManifestEntry struct {
	Name        string  `json:"name"`
	Image       string  `json:"image"`
	Reflectance float64 `json:"reflectance"`
}

// WriteManifest writes the successful results to a JSON manifest.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Name:        r.Name,
			Image:       r.File,
			Reflectance: r.Reflectance,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// WriteContactSheet tiles every successful preview into one WebP image.
// It returns false when there was nothing to write.
func WriteContactSheet(path string, results []Result, cols, cell int) (bool, error) {
	var tiles []image.Image
	for _, r := range results {
		if r.Success && r.Image != nil {
			tiles = append(tiles, r.Image)
		}
	}
	if len(tiles) == 0 {
		return false, nil
	}
	sheet := postprocess.ContactSheet(tiles, cols, cell, cell/16, color.NRGBA{A: 255})
	return true, writeWebP(path, sheet)
}
