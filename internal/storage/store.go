package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/rigidsim/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Frame is one recorded row of per-step diagnostics.
type Frame struct {
	Frame            int
	Time             float64
	StepSize         float64
	ParticleContacts int
	BoxContacts      int
	Iterations       int
	Converged        bool
}

// Recorder captures a Frame per step. It implements sim.Observer so it
// can be attached to a world with AddObserver.
type Recorder struct {
	Frames []Frame
}

func (r *Recorder) OnStep(w *sim.World, fs sim.FrameStats) {
	r.Frames = append(r.Frames, Frame{
		Frame:            fs.Frame,
		Time:             w.Time(),
		StepSize:         fs.StepSize,
		ParticleContacts: fs.ParticleContacts,
		BoxContacts:      fs.BoxContacts,
		Iterations:       fs.Iterations,
		Converged:        fs.Converged,
	})
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Particles int                `json:"particles"`
	Boxes     int                `json:"boxes"`
	Frames    int                `json:"frames"`
	Metrics   map[string]float64 `json:"metrics"`
}

func (s *Store) Save(preset string, seed int64, particles, boxes int, metrics map[string]float64, frames []Frame) (string, error) {
	runID := fmt.Sprintf("%s_%d", preset, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Preset:    preset,
		Timestamp: time.Now(),
		Seed:      seed,
		Particles: particles,
		Boxes:     boxes,
		Frames:    len(frames),
		Metrics:   metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"frame", "time", "step_size", "particle_contacts", "box_contacts", "iterations", "converged"}
	if err := w.Write(header); err != nil {
		return "", err
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
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadFrames(runID string) ([]Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Frame{}, nil
	}

	frames := make([]Frame, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 7 {
			continue
		}
		frame, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		t, _ := strconv.ParseFloat(record[1], 64)
		h, _ := strconv.ParseFloat(record[2], 64)
		pc, _ := strconv.Atoi(record[3])
		bc, _ := strconv.Atoi(record[4])
		iters, _ := strconv.Atoi(record[5])
		conv, _ := strconv.ParseBool(record[6])

		frames = append(frames, Frame{
			Frame:            frame,
			Time:             t,
			StepSize:         h,
			ParticleContacts: pc,
			BoxContacts:      bc,
			Iterations:       iters,
			Converged:        conv,
		})
	}

	return frames, nil
}
