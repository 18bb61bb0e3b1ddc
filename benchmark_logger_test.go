package matbench

import (
	"encoding/json"
	"os"
	"testing"
)

func TestSessionLogger(t *testing.T) {
	SetLogDir(t.TempDir())

	if err := InitSessionLogger("logger-test"); err != nil {
		t.Fatalf("InitSessionLogger failed: %v", err)
	}

	cfg := Config{M: 512, N: 512, K: 512, DType: Float16}
	LogMeasurementPass("matmul-square-nn", "reference", cfg, Result{TFLOPS: 1.5, TimeMs: 180})
	LogMeasurementSkip("matmul-square-nn", "cutlass", cfg)

	path, err := GetLatestLogFile()
	if err != nil {
		t.Fatalf("GetLatestLogFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read session file: %v", err)
	}

	var records []MeasurementRecord
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("Session file is not valid JSON: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Got %d records, want 2", len(records))
	}
	if records[0].Status != "pass" || records[0].TFLOPS != 1.5 {
		t.Errorf("First record = %+v, want pass at 1.5 TFLOPS", records[0])
	}
	if records[1].Status != "skip" || records[1].Provider != "cutlass" {
		t.Errorf("Second record = %+v, want cutlass skip", records[1])
	}
	if records[0].Timestamp.IsZero() {
		t.Error("Record timestamp was not set")
	}
}
