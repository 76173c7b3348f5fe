package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/san-kum/springlab/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		Times:      []float64{0.0, 0.01, 0.02},
		Positions:  []float64{1.0, 0.9995, 0.998},
		Velocities: []float64{0.0, -0.01, -0.02},
		Energies:   []float64{0.5, 0.5, 0.5},
		Metrics:    map[string]float64{"peak_amplitude": 1.0},
		Steps:      2,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := RunMetadata{
		Mass: 1.0, Damping: 0.5, SpringConstant: 10.0,
		Forcing:       "sine",
		ForcingParams: map[string]float64{"amplitude": 1, "frequency": 2},
		Dt:            0.01,
		Duration:      0.02,
	}

	runID, err := st.Save(meta, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Forcing != "sine" {
		t.Errorf("forcing: got %s", loaded.Forcing)
	}
	if loaded.Metrics["peak_amplitude"] != 1.0 {
		t.Errorf("metrics: got %v", loaded.Metrics)
	}

	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	if len(traj.Times) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(traj.Times))
	}
	if math.Abs(traj.Positions[1]-0.9995) > 1e-6 {
		t.Errorf("position round trip: got %f", traj.Positions[1])
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list on empty store failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	if _, err := st.Save(RunMetadata{Mass: 1}, sampleResult()); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	meta := RunMetadata{ID: "run_1", Mass: 1}

	if err := ExportJSON(&buf, meta, sampleResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("export produced invalid json: %v", err)
	}
	if data.Meta.ID != "run_1" {
		t.Errorf("meta id: got %s", data.Meta.ID)
	}
	if len(data.Positions) != 3 {
		t.Errorf("positions: got %d", len(data.Positions))
	}
}
