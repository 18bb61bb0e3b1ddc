package matbench

import (
	"fmt"
	"testing"
)

func TestOperandStorageShapes(t *testing.T) {
	const m, n, k = 96, 64, 48

	tests := []struct {
		at, bt bool
	}{
		{false, false},
		{true, false},
		{false, true},
		{true, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("AT=%v_BT=%v", tt.at, tt.bt), func(t *testing.T) {
			cfg := Config{M: m, N: n, K: k, TransA: tt.at, TransB: tt.bt, DType: Float16}

			a := OperandAOrFail(t, cfg)
			defer a.Free()
			b := OperandBOrFail(t, cfg)
			defer b.Free()

			// Effective shapes never change with the layout flags
			if a.Rows != m || a.Cols != k {
				t.Errorf("A effective shape = (%d,%d), want (%d,%d)", a.Rows, a.Cols, m, k)
			}
			if b.Rows != k || b.Cols != n {
				t.Errorf("B effective shape = (%d,%d), want (%d,%d)", b.Rows, b.Cols, k, n)
			}

			// Storage shapes swap when transposed
			wantARows, wantACols := m, k
			if tt.at {
				wantARows, wantACols = k, m
			}
			if a.StorageRows() != wantARows || a.StorageCols() != wantACols {
				t.Errorf("A storage shape = (%d,%d), want (%d,%d)",
					a.StorageRows(), a.StorageCols(), wantARows, wantACols)
			}

			wantBRows, wantBCols := k, n
			if tt.bt {
				wantBRows, wantBCols = n, k
			}
			if b.StorageRows() != wantBRows || b.StorageCols() != wantBCols {
				t.Errorf("B storage shape = (%d,%d), want (%d,%d)",
					b.StorageRows(), b.StorageCols(), wantBRows, wantBCols)
			}

			if got := len(a.Data.Float16()); got != m*k {
				t.Errorf("A element count = %d, want %d", got, m*k)
			}
			if got := len(b.Data.Float16()); got != k*n {
				t.Errorf("B element count = %d, want %d", got, k*n)
			}
		})
	}
}

func TestOperandRandomFill(t *testing.T) {
	cfg := Config{M: 32, N: 32, K: 32, DType: Float16}

	a := OperandAOrFail(t, cfg)
	defer a.Free()

	nonZero := 0
	for _, v := range a.Data.Float16() {
		f := v.Float32()
		// Values near 1 may round up to exactly 1 in half precision
		if f < 0 || f > 1 {
			t.Fatalf("Operand value %v outside [0,1]", f)
		}
		if f != 0 {
			nonZero++
		}
	}
	if nonZero == 0 {
		t.Error("Operand was not filled with random data")
	}
}

func TestOperandToFloat32(t *testing.T) {
	cfg := Config{M: 16, N: 16, K: 16, DType: Float16}

	a := OperandAOrFail(t, cfg)
	defer a.Free()

	f32, err := a.ToFloat32()
	if err != nil {
		t.Fatalf("ToFloat32 failed: %v", err)
	}
	defer Free(f32)

	src := a.Data.Float16()
	dst := f32.Float32()
	if len(dst) != len(src) {
		t.Fatalf("Widened length = %d, want %d", len(dst), len(src))
	}
	for i := range src {
		if dst[i] != src[i].Float32() {
			t.Fatalf("Widened value at %d = %v, want %v", i, dst[i], src[i].Float32())
		}
	}
}

func TestOperandInvalidSize(t *testing.T) {
	cfg := Config{M: 0, N: 16, K: 16, DType: Float16}
	if _, err := NewOperandA(cfg); err == nil {
		t.Error("Expected error for zero dimension")
	}
}
