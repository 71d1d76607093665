package storage

import (
	"encoding/json"
	"os"
)

type ExportData struct {
	Run    RunMetadata   `json:"run"`
	Steps  int           `json:"steps"`
	Frames []FrameRecord `json:"frames"`
}

// ExportJSON writes a run and its frames as a single JSON document.
func ExportJSON(path string, meta RunMetadata, frames []FrameRecord) error {
	data := ExportData{
		Run:    meta,
		Steps:  len(frames),
		Frames: frames,
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
