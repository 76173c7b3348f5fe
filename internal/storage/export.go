package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/springlab/internal/sim"
)

type ExportData struct {
	Meta       RunMetadata `json:"meta"`
	Times      []float64   `json:"times"`
	Positions  []float64   `json:"positions"`
	Velocities []float64   `json:"velocities"`
	Energies   []float64   `json:"energies"`
}

// ExportJSON writes one run as a single JSON document.
func ExportJSON(w io.Writer, meta RunMetadata, result *sim.Result) error {
	data := ExportData{
		Meta:       meta,
		Times:      result.Times,
		Positions:  result.Positions,
		Velocities: result.Velocities,
		Energies:   result.Energies,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
