package matbench

import (
	"testing"
)

// MallocOrFail allocates device memory and fails the test if unsuccessful
func MallocOrFail(t testing.TB, size int) DevicePtr {
	t.Helper()
	ptr, err := Malloc(size)
	if err != nil {
		t.Fatalf("Failed to allocate %d bytes: %v", size, err)
	}
	return ptr
}

// OperandAOrFail allocates operand A for cfg and fails the test if unsuccessful
func OperandAOrFail(t testing.TB, cfg Config) Operand {
	t.Helper()
	op, err := NewOperandA(cfg)
	if err != nil {
		t.Fatalf("Failed to allocate operand A for %dx%dx%d: %v", cfg.M, cfg.N, cfg.K, err)
	}
	return op
}

// OperandBOrFail allocates operand B for cfg and fails the test if unsuccessful
func OperandBOrFail(t testing.TB, cfg Config) Operand {
	t.Helper()
	op, err := NewOperandB(cfg)
	if err != nil {
		t.Fatalf("Failed to allocate operand B for %dx%dx%d: %v", cfg.M, cfg.N, cfg.K, err)
	}
	return op
}
