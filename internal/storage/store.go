package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/greyspace/internal/space"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
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

type RunMetadata struct {
	ID         string             `json:"id"`
	Level      string             `json:"level"`
	Timestamp  time.Time          `json:"timestamp"`
	Dt         float64            `json:"dt"`
	SubSteps   int                `json:"sub_steps"`
	Frames     int                `json:"frames"`
	Integrator string             `json:"integrator"`
	Completed  bool               `json:"completed"`
	Lost       bool               `json:"lost"`
	Metrics    map[string]float64 `json:"metrics"`
}

// FrameRecord is one row of frames.csv.
type FrameRecord struct {
	Frame        int     `csv:"frame"`
	Time         float64 `csv:"time"`
	ShipX        float64 `csv:"ship_x"`
	ShipY        float64 `csv:"ship_y"`
	ShipVX       float64 `csv:"ship_vx"`
	ShipVY       float64 `csv:"ship_vy"`
	ShipEnergy   float64 `csv:"ship_energy"`
	Potential    float64 `csv:"potential"`
	Fuel         int     `csv:"fuel"`
	Particles    int     `csv:"particles"`
	Fired        bool    `csv:"fired"`
	FieldChanged bool    `csv:"field_changed"`
	Completed    bool    `csv:"completed"`
	Lost         bool    `csv:"lost"`
}

// Record captures the state of s after a frame.
func Record(s *space.Space, fieldChanged bool) FrameRecord {
	r := FrameRecord{
		Frame:        s.Frame(),
		Time:         s.Time(),
		Particles:    len(s.Particles),
		Fired:        s.Fired(),
		FieldChanged: fieldChanged,
		Completed:    s.IsLevelCompleted,
		Lost:         s.IsLevelLost,
	}
	if sh := s.Ship; sh != nil {
		r.ShipX, r.ShipY = sh.Pos.X, sh.Pos.Y
		r.ShipVX, r.ShipVY = sh.Vel.X, sh.Vel.Y
		r.ShipEnergy = sh.Energy
		r.Potential = s.Potential(sh.Pos)
		r.Fuel = sh.ParticleCount
	}
	return r
}

func (s *Store) Save(meta RunMetadata, frames []FrameRecord) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d", meta.Level, meta.Timestamp.UnixNano())
	}
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if len(frames) == 0 {
		return meta.ID, nil
	}
	if err := gocsv.MarshalFile(&frames, csvFile); err != nil {
		return "", fmt.Errorf("write frames: %w", err)
	}

	return meta.ID, nil
}

// List returns every readable run, newest first.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadFrames(runID string) ([]FrameRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	frames := []FrameRecord{}
	if err := gocsv.UnmarshalFile(file, &frames); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []FrameRecord{}, nil
		}
		return nil, fmt.Errorf("read frames: %w", err)
	}
	return frames, nil
}
