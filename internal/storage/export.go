package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"
)

type ExportData struct {
	Meta   RunMetadata `json:"meta"`
	Frames []Frame     `json:"frames"`
}

func ExportJSON(path string, meta *RunMetadata, frames []Frame) error {
	out, done, err := openOut(path)
	if err != nil {
		return err
	}
	defer done()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Meta: *meta, Frames: frames})
}

func ExportCSV(path string, frames []Frame) error {
	out, done, err := openOut(path)
	if err != nil {
		return err
	}
	defer done()

	w := csv.NewWriter(out)
	defer w.Flush()

	if err := w.Write([]string{"frame", "time", "step_size", "particle_contacts", "box_contacts", "iterations", "converged"}); err != nil {
		return err
	}
	for _, f := range frames {
		row := []string{
			strconv.Itoa(f.Frame),
			strconv.FormatFloat(f.Time, 'f', 6, 64),
			strconv.FormatFloat(f.StepSize, 'f', 6, 64),
			strconv.Itoa(f.ParticleContacts),
			strconv.Itoa(f.BoxContacts),
			strconv.Itoa(f.Iterations),
			strconv.FormatBool(f.Converged),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// openOut opens path for writing, with "-" meaning stdout.
func openOut(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
