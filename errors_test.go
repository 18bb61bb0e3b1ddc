package matbench

import (
	"errors"
	"testing"
)

func TestStructuredErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType ErrorType
		wantOp   string
		wantMsg  string
		checkFn  func(error) bool
	}{
		{
			name:     "Invalid Size Error",
			err:      ErrInvalidSize,
			wantType: ErrTypeConfig,
			wantOp:   "Malloc",
			wantMsg:  "size must be positive",
			checkFn:  func(err error) bool { return !IsDeviceError(err) && !IsProfilerError(err) },
		},
		{
			name:     "Double Free Error",
			err:      ErrDoubleFree,
			wantType: ErrTypeDevice,
			wantOp:   "Free",
			wantMsg:  "double free detected",
			checkFn:  IsDeviceError,
		},
		{
			name:     "Profiler Error",
			err:      NewProfilerError("Cutlass", "report has no GFLOPs column", nil),
			wantType: ErrTypeProfiler,
			wantOp:   "Cutlass",
			wantMsg:  "report has no GFLOPs column",
			checkFn:  IsProfilerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			benchErr, ok := tt.err.(*BenchError)
			if !ok {
				t.Fatalf("Expected BenchError, got %T", tt.err)
			}

			if benchErr.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", benchErr.Type, tt.wantType)
			}
			if benchErr.Op != tt.wantOp {
				t.Errorf("Op = %v, want %v", benchErr.Op, tt.wantOp)
			}
			if benchErr.Message != tt.wantMsg {
				t.Errorf("Message = %v, want %v", benchErr.Message, tt.wantMsg)
			}
			if !tt.checkFn(tt.err) {
				t.Errorf("Type check function returned false")
			}
			if tt.err.Error() == "" {
				t.Error("Error string is empty")
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	baseErr := errors.New("base error")
	wrappedErr := NewProfilerError("Test", "wrapped error", baseErr)

	benchErr, ok := wrappedErr.(*BenchError)
	if !ok {
		t.Fatal("Expected BenchError")
	}

	if unwrapped := benchErr.Unwrap(); unwrapped != baseErr {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, baseErr)
	}

	if !errors.Is(wrappedErr, baseErr) {
		t.Error("errors.Is() should return true for wrapped error")
	}
}

func TestErrorTypeString(t *testing.T) {
	tests := []struct {
		errType ErrorType
		want    string
	}{
		{ErrTypeConfig, "Config"},
		{ErrTypeDevice, "Device"},
		{ErrTypeExecution, "Execution"},
		{ErrTypeProfiler, "Profiler"},
		{ErrorType(999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.errType.String(); got != tt.want {
				t.Errorf("String() = %v, want %v", got, tt.want)
			}
		})
	}
}
