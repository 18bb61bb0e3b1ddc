package matbench

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// MeasurementRecord captures the outcome of a single measurement
type MeasurementRecord struct {
	Benchmark string    `json:"benchmark"`
	Provider  string    `json:"provider"`
	M         int       `json:"m"`
	N         int       `json:"n"`
	K         int       `json:"k"`
	Status    string    `json:"status"` // "pass", "skip", "fail"
	TFLOPS    float64   `json:"tflops,omitempty"`
	TimeMs    float64   `json:"time_ms,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionLogger manages logging of measurement records to file
type SessionLogger struct {
	mu          sync.Mutex
	records     []MeasurementRecord
	logDir      string
	sessionFile string
}

var globalLogger = &SessionLogger{
	logDir: "matbench_logs",
}

// InitSessionLogger initializes the logger for a new sweep session
func InitSessionLogger(sessionName string) error {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()

	if err := os.MkdirAll(globalLogger.logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	globalLogger.sessionFile = filepath.Join(globalLogger.logDir,
		fmt.Sprintf("%s_%s.json", sessionName, timestamp))

	// Reset records for new session
	globalLogger.records = nil

	return globalLogger.flush()
}

// SetLogDir changes where session files are written. Takes effect at
// the next InitSessionLogger call.
func SetLogDir(dir string) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	globalLogger.logDir = dir
}

// LogMeasurement appends a record to the session log
func LogMeasurement(rec MeasurementRecord) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()

	rec.Timestamp = time.Now()
	globalLogger.records = append(globalLogger.records, rec)

	// Flush to disk immediately to avoid losing data on crash
	globalLogger.flush()
}

// LogMeasurementPass logs a successful measurement
func LogMeasurementPass(bench, provider string, cfg Config, res Result) {
	LogMeasurement(MeasurementRecord{
		Benchmark: bench,
		Provider:  provider,
		M:         cfg.M,
		N:         cfg.N,
		K:         cfg.K,
		Status:    "pass",
		TFLOPS:    res.TFLOPS,
		TimeMs:    res.TimeMs,
	})
}

// LogMeasurementSkip logs an absent result (backend unavailable or
// unrecognized)
func LogMeasurementSkip(bench, provider string, cfg Config) {
	LogMeasurement(MeasurementRecord{
		Benchmark: bench,
		Provider:  provider,
		M:         cfg.M,
		N:         cfg.N,
		K:         cfg.K,
		Status:    "skip",
	})
}

// LogMeasurementFail logs a measurement that aborted the sweep
func LogMeasurementFail(bench, provider string, cfg Config, err error) {
	LogMeasurement(MeasurementRecord{
		Benchmark: bench,
		Provider:  provider,
		M:         cfg.M,
		N:         cfg.N,
		K:         cfg.K,
		Status:    "fail",
		Error:     err.Error(),
	})
}

// flush writes records to disk
func (sl *SessionLogger) flush() error {
	if sl.sessionFile == "" {
		return nil // Not initialized
	}

	data, err := json.MarshalIndent(sl.records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	return os.WriteFile(sl.sessionFile, data, 0644)
}

// GetLatestLogFile returns the path to the most recent session file
func GetLatestLogFile() (string, error) {
	files, err := filepath.Glob(filepath.Join(globalLogger.logDir, "*.json"))
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no log files found")
	}

	var latest string
	var latestTime time.Time
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latest = file
			latestTime = info.ModTime()
		}
	}

	return latest, nil
}

// PrintSessionSummary prints a summary of the latest sweep session
func PrintSessionSummary() error {
	logFile, err := GetLatestLogFile()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		return err
	}

	var records []MeasurementRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}

	fmt.Printf("\nSweep Summary from %s:\n", filepath.Base(logFile))
	fmt.Println(strings.Repeat("=", 62))

	passed, skipped, failed := 0, 0, 0
	for _, r := range records {
		name := fmt.Sprintf("%s/%s/%d", r.Benchmark, r.Provider, r.M)
		switch r.Status {
		case "pass":
			passed++
			fmt.Printf("✓ %-44s %10.2f TFLOPS\n", name, r.TFLOPS)
		case "skip":
			skipped++
		case "fail":
			failed++
			fmt.Printf("✗ %-44s FAILED: %s\n", name, r.Error)
		}
	}

	fmt.Println(strings.Repeat("=", 62))
	fmt.Printf("Total: %d | Passed: %d | Skipped: %d | Failed: %d\n",
		len(records), passed, skipped, failed)

	return nil
}
