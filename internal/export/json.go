package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/heatsim/internal/dynamo"
)

type ExportData struct {
	Geometry string             `json:"geometry"`
	Material string             `json:"material"`
	N        int                `json:"n"`
	Dx       float64            `json:"dx"`
	Dt       float64            `json:"dt"`
	Steps    int                `json:"steps"`
	Times    []float64          `json:"times"`
	Fields   [][]float64        `json:"fields"`
	Metrics  map[string]float64 `json:"metrics"`
}

// NewExportData bundles a result with the setup needed to interpret it.
func NewExportData(geometry, material string, dx, dt float64, result *dynamo.Result) ExportData {
	return ExportData{
		Geometry: geometry,
		Material: material,
		N:        result.N,
		Dx:       dx,
		Dt:       dt,
		Steps:    result.StepsTaken,
		Times:    result.Times,
		Fields:   result.Fields,
		Metrics:  result.Metrics,
	}
}

func WriteJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
