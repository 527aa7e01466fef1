package storage

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/heatsim/internal/dynamo"
	"github.com/san-kum/heatsim/internal/physics"
)

func sampleResult() *dynamo.Result {
	return &dynamo.Result{
		Dims:       1,
		N:          3,
		Times:      []float64{0, 0.016},
		Fields:     [][]float64{{286.15, 286.15, 286.15}, {286.2000000001, 286.18, 286.15}},
		Metrics:    map[string]float64{"peak_temperature": 286.2000000001},
		StepsTaken: 1,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := RunMetadata{Geometry: "bar", Material: "copper", N: 3, TMax: 16}
	runID, err := st.Save(meta, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if !strings.HasPrefix(runID, "bar_copper_") {
		t.Errorf("unexpected run id %q", runID)
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Material != "copper" {
		t.Errorf("expected material 'copper', got '%s'", loaded.Material)
	}
	if loaded.Steps != 1 || loaded.Samples != 2 {
		t.Errorf("expected 1 step and 2 samples, got %d and %d", loaded.Steps, loaded.Samples)
	}
	if loaded.Metrics["peak_temperature"] != 286.2000000001 {
		t.Errorf("expected peak 286.2000000001, got %f", loaded.Metrics["peak_temperature"])
	}

	fields, times, err := st.LoadFields(runID)
	if err != nil {
		t.Fatalf("load fields failed: %v", err)
	}

	want := sampleResult()
	if len(fields) != 2 || len(times) != 2 {
		t.Fatalf("expected 2 samples, got %d fields and %d times", len(fields), len(times))
	}
	for i := range want.Fields {
		if times[i] != want.Times[i] {
			t.Errorf("time %d: expected %v, got %v", i, want.Times[i], times[i])
		}
		for j := range want.Fields[i] {
			if fields[i][j] != want.Fields[i][j] {
				t.Errorf("field %d cell %d: expected %v, got %v", i, j, want.Fields[i][j], fields[i][j])
			}
		}
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	for _, m := range []string{"copper", "iron"} {
		if _, err := st.Save(RunMetadata{Geometry: "bar", Material: m}, sampleResult()); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Material != "copper" {
		t.Errorf("expected oldest run first, got %s", runs[0].Material)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(RunMetadata{Geometry: "plate", Material: "glass"}, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	for _, name := range []string{"metadata.json", "fields.csv"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestWriteFieldsCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFieldsCSV(&buf, sampleResult()); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "time,u0,u1,u2" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[1] != "0,286.15,286.15,286.15" {
		t.Errorf("unexpected first row %q", lines[1])
	}
}

func TestDescribeAndResult(t *testing.T) {
	s, err := dynamo.NewSolver2D(physics.Glass, dynamo.Params{Length: 1, TMax: 16, U0: 13, F: 80, N: 7})
	if err != nil {
		t.Fatal(err)
	}
	res, err := dynamo.NewSimulator(dynamo.WithConfig(dynamo.Config{SampleEvery: 500})).Run(context.Background(), s)
	if err != nil {
		t.Fatal(err)
	}

	st := New(t.TempDir())
	meta := Describe(s)
	if meta.Geometry != "plate" || meta.Material != "glass" || meta.MaxSweeps != 100 {
		t.Errorf("unexpected metadata %+v", meta)
	}

	runID, err := st.Save(meta, res)
	if err != nil {
		t.Fatal(err)
	}

	loadedMeta, loaded, err := st.Result(runID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Dims != 2 || loaded.N != 7 {
		t.Errorf("expected 7x7 plate, got dims=%d n=%d", loaded.Dims, loaded.N)
	}
	if len(loaded.Fields) != 3 {
		t.Errorf("expected 3 samples, got %d", len(loaded.Fields))
	}
	if loadedMeta.Steps != dynamo.StepsPerRun {
		t.Errorf("expected %d steps, got %d", dynamo.StepsPerRun, loadedMeta.Steps)
	}
}

func TestStoreSave_RemovesPartialRun(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	// JSON cannot encode NaN, so the metadata write fails after the run
	// directory exists.
	result := sampleResult()
	result.Metrics = map[string]float64{"peak_temperature": math.NaN()}

	if _, err := st.Save(RunMetadata{Geometry: "bar", Material: "copper", N: 3}, result); err == nil {
		t.Fatal("expected save to fail")
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no run directories, found %d", len(entries))
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
