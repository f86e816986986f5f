package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/isingsim/internal/experiment"
)

type ExportData struct {
	Run     RunMetadata         `json:"run"`
	Records []experiment.Record `json:"records"`
}

// ExportJSON writes a run and its records as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, records []experiment.Record) error {
	data := ExportData{
		Run:     *meta,
		Records: records,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
