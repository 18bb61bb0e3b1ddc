package matbench

import (
	"math/rand"

	"github.com/x448/float16"
)

// DType identifies the numeric precision of benchmark operands.
type DType int

const (
	// Float16 is IEEE 754 binary16, the precision used by the square
	// sweep
	Float16 DType = iota
)

// String returns the dtype spelled the way the external profiler
// expects it
func (d DType) String() string {
	switch d {
	case Float16:
		return "f16"
	default:
		return "unknown"
	}
}

// Config is one point of the benchmark grid: logical GEMM dimensions
// plus the storage layout of the two input operands. Immutable once
// generated.
type Config struct {
	M, N, K        int
	TransA, TransB bool
	DType          DType
}

// FLOPs returns the floating-point operation count of one GEMM at this
// configuration (a multiply and an add per inner-product term).
func (c Config) FLOPs() int64 {
	return 2 * int64(c.M) * int64(c.N) * int64(c.K)
}

// Operand is a half-precision matrix staged in device memory. When
// Trans is set the matrix was allocated in the swapped-dimension layout
// and is multiplied as its transpose, so storage is (Cols, Rows) while
// the effective shape stays (Rows, Cols).
type Operand struct {
	Rows, Cols int // effective (logical) shape
	Trans      bool
	Data       DevicePtr
}

// NewOperandA allocates operand A for cfg with fresh random contents.
// Storage shape is (M,K), or (K,M) when cfg.TransA, matching the
// layouts the sweep exercises.
func NewOperandA(cfg Config) (Operand, error) {
	return newOperand(cfg.M, cfg.K, cfg.TransA)
}

// NewOperandB allocates operand B for cfg with fresh random contents.
// Storage shape is (K,N), or (N,K) when cfg.TransB.
func NewOperandB(cfg Config) (Operand, error) {
	return newOperand(cfg.K, cfg.N, cfg.TransB)
}

func newOperand(rows, cols int, trans bool) (Operand, error) {
	if rows <= 0 || cols <= 0 {
		return Operand{}, NewConfigError("Operand", "dimensions must be positive")
	}

	ptr, err := Malloc(rows * cols * 2)
	if err != nil {
		return Operand{}, err
	}

	fillRandomF16(ptr.Float16())

	return Operand{
		Rows:  rows,
		Cols:  cols,
		Trans: trans,
		Data:  ptr,
	}, nil
}

// StorageRows returns the leading dimension of the stored matrix.
func (o Operand) StorageRows() int {
	if o.Trans {
		return o.Cols
	}
	return o.Rows
}

// StorageCols returns the trailing dimension of the stored matrix.
func (o Operand) StorageCols() int {
	if o.Trans {
		return o.Rows
	}
	return o.Cols
}

// ToFloat32 converts the operand into a freshly allocated float32
// device buffer, in storage order. Local backends compute in f32 and
// widen on the way in, the same protocol GEMMFloat16-style kernels use.
func (o Operand) ToFloat32() (DevicePtr, error) {
	n := o.Rows * o.Cols
	ptr, err := Malloc(n * 4)
	if err != nil {
		return DevicePtr{}, err
	}

	src := o.Data.Float16()
	dst := ptr.Float32()
	for i := 0; i < n; i++ {
		dst[i] = src[i].Float32()
	}
	return ptr, nil
}

// Free releases the operand's device memory.
func (o Operand) Free() error {
	return Free(o.Data)
}

// fillRandomF16 fills dst with uniform values in [0, 1). The source is
// deliberately seed-free: operands are regenerated independently for
// every (configuration, backend) pairing and exact reproducibility is
// not expected.
func fillRandomF16(dst []float16.Float16) {
	for i := range dst {
		dst[i] = float16.Fromfloat32(rand.Float32())
	}
}
