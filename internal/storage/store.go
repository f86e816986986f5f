package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/isingsim/internal/experiment"
	"github.com/san-kum/isingsim/internal/physics"
)

// ErrRunNotFound indicates no run directory exists for the requested id.
var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	resultsFile  = "results.csv"
)

var csvHeader = []string{
	"temperature", "energy", "magnetization", "heat_capacity", "susceptibility",
	"energy_err", "magnetization_err", "acceptance_rate",
}

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
	ID             string             `json:"id"`
	Timestamp      time.Time          `json:"timestamp"`
	Seed           int64              `json:"seed"`
	Size           int                `json:"size"`
	Field          float64            `json:"field"`
	Equilibration  int                `json:"equilibration"`
	Measurement    int                `json:"measurement"`
	Units          physics.Units      `json:"units"`
	Temperatures   int                `json:"temperatures"`
	ElapsedSeconds float64            `json:"elapsed_seconds"`
	Metrics        map[string]float64 `json:"metrics,omitempty"`
}

// Save writes meta and records under a fresh run directory and returns the run id.
// meta.ID and meta.Timestamp are filled in.
func (s *Store) Save(meta *RunMetadata, records []experiment.Record) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("ising%d_%d", meta.Size, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Temperatures = len(records)

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

	csvFile, err := os.Create(filepath.Join(runDir, resultsFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, r := range records {
		row := []string{
			formatFloat(r.Temperature),
			formatFloat(r.Energy),
			formatFloat(r.Magnetization),
			formatFloat(r.HeatCapacity),
			formatFloat(r.Susceptibility),
			formatFloat(r.EnergyErr),
			formatFloat(r.MagnetizationErr),
			formatFloat(r.AcceptanceRate),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns every readable run, oldest first.
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
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadRecords(runID string) ([]experiment.Record, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, resultsFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(csvHeader)

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return []experiment.Record{}, nil
	}

	records := make([]experiment.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		vals := make([]float64, len(row))
		for j, field := range row {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", i+1, csvHeader[j], err)
			}
			vals[j] = v
		}
		records = append(records, experiment.Record{
			Temperature:      vals[0],
			Energy:           vals[1],
			Magnetization:    vals[2],
			HeatCapacity:     vals[3],
			Susceptibility:   vals[4],
			EnergyErr:        vals[5],
			MagnetizationErr: vals[6],
			AcceptanceRate:   vals[7],
		})
	}

	return records, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
