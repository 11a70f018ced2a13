package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one processed frame in the output manifest.
type ManifestEntry struct {
	Frame     int      `json:"frame"`
	Time      string   `json:"time,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Elevation *float64 `json:"elevation,omitempty"`
	Files     []string `json:"files"`
}

// WriteManifest writes the successful results as a JSON manifest.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		e := ManifestEntry{Frame: r.Frame, Files: r.Files}
		if !r.Time.IsZero() {
			e.Time = r.Time.UTC().Format("2006-01-02T15:04:05.000Z")
		}
		if p := r.Position; p != nil {
			e.Latitude, e.Longitude, e.Elevation = &p.Lat, &p.Lon, &p.Elev
		}
		entries = append(entries, e)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
