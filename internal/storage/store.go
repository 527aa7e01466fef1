package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/heatsim/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	fieldsFile   = "fields.csv"
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
	ID        string             `json:"id"`
	Geometry  string             `json:"geometry"`
	Material  string             `json:"material"`
	Timestamp time.Time          `json:"timestamp"`
	Length    float64            `json:"length"`
	TMax      float64            `json:"tmax"`
	U0        float64            `json:"u0"`
	F         float64            `json:"f"`
	N         int                `json:"n"`
	Dx        float64            `json:"dx"`
	Dt        float64            `json:"dt"`
	MaxSweeps int                `json:"max_sweeps,omitempty"`
	Tolerance float64            `json:"tolerance,omitempty"`
	Steps     int                `json:"steps"`
	Samples   int                `json:"samples"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Describe captures the solver setup for a run's metadata.
func Describe(s *dynamo.Solver) RunMetadata {
	p, g := s.Params(), s.Grid()
	geometry := "bar"
	if s.Dims() == 2 {
		geometry = "plate"
	}
	return RunMetadata{
		Geometry:  geometry,
		Material:  strings.ToLower(s.Material().Name),
		Length:    p.Length,
		TMax:      p.TMax,
		U0:        p.U0,
		F:         p.F,
		N:         p.N,
		Dx:        g.Dx,
		Dt:        g.Dt,
		MaxSweeps: s.Relaxation().MaxSweeps,
		Tolerance: s.Relaxation().Tolerance,
	}
}

// Save writes the metadata and sampled fields of a run into a new directory
// and returns its id.
func (s *Store) Save(meta RunMetadata, result *dynamo.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%s_%d", meta.Geometry, meta.Material, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Steps = result.StepsTaken
	meta.Samples = len(result.Times)
	meta.Metrics = result.Metrics

	if err := writeRun(runDir, meta, result); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func writeRun(runDir string, meta RunMetadata, result *dynamo.Result) error {
	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(runDir, fieldsFile))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	return WriteFieldsCSV(csvFile, result)
}

// WriteFieldsCSV writes one row per sample: the time followed by every cell
// of the field in storage order.
func WriteFieldsCSV(out io.Writer, result *dynamo.Result) error {
	w := csv.NewWriter(out)

	if len(result.Fields) > 0 {
		header := []string{"time"}
		for i := range result.Fields[0] {
			header = append(header, fmt.Sprintf("u%d", i))
		}
		if err := w.Write(header); err != nil {
			return err
		}
	}

	for i := range result.Fields {
		row := make([]string, 0, len(result.Fields[i])+1)
		row = append(row, strconv.FormatFloat(result.Times[i], 'g', -1, 64))
		for _, val := range result.Fields[i] {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns the metadata of every stored run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
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
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadFields reads back the sampled fields and their times.
func (s *Store) LoadFields(runID string) ([][]float64, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, fieldsFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	fields := make([][]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("run %s row %d: %w", runID, i, err)
		}

		field := make([]float64, 0, len(record)-1)
		for j := 1; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("run %s row %d: %w", runID, i, err)
			}
			field = append(field, val)
		}
		times = append(times, t)
		fields = append(fields, field)
	}

	return fields, times, nil
}

// Result rebuilds a dynamo.Result from a stored run for rendering.
func (s *Store) Result(runID string) (*RunMetadata, *dynamo.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	fields, times, err := s.LoadFields(runID)
	if err != nil {
		return nil, nil, err
	}
	dims := 1
	if meta.Geometry == "plate" {
		dims = 2
	}
	return meta, &dynamo.Result{
		Dims:       dims,
		N:          meta.N,
		Times:      times,
		Fields:     fields,
		Metrics:    meta.Metrics,
		StepsTaken: meta.Steps,
	}, nil
}
