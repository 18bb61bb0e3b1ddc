package matbench

import (
	"runtime"
	"sync"
	"unsafe"

	"github.com/x448/float16"
)

// Device describes the compute device operands are staged on. matbench
// executes its local backends on the CPU, so there is exactly one device.
type Device struct {
	ID       int    // Unique device identifier
	Name     string // Human-readable device name
	TotalMem uint64 // Total available memory in bytes
	NumCores int    // Number of CPU cores
}

// MemoryPool manages device memory allocation with efficient reuse.
// It maintains a free list of previously allocated blocks so that the
// per-measurement operand churn does not hammer the allocator.
type MemoryPool struct {
	mu         sync.Mutex
	allocated  map[uintptr]*allocation
	freeList   []*allocation
	totalAlloc int64
	peakAlloc  int64
}

type allocation struct {
	buf  []byte // keeps the backing array reachable
	ptr  unsafe.Pointer
	size int
	used bool
}

// DevicePtr represents a pointer to device memory. Use the typed view
// methods (Float16, Float32, Byte) to access the underlying data.
type DevicePtr struct {
	ptr  unsafe.Pointer
	size int
}

// Global runtime state
var (
	defaultDevice *Device
	defaultPool   *MemoryPool
	initOnce      sync.Once
)

func init() {
	initOnce.Do(func() {
		defaultDevice = &Device{
			ID:       0,
			Name:     "CPU",
			TotalMem: getSystemMemory(),
			NumCores: runtime.NumCPU(),
		}
		defaultPool = NewMemoryPool()
	})
}

// GetDevice returns the current device information.
func GetDevice() *Device {
	return defaultDevice
}

// NewMemoryPool creates a new memory pool. The pool tracks allocations
// and provides statistics on memory usage.
func NewMemoryPool() *MemoryPool {
	return &MemoryPool{
		allocated: make(map[uintptr]*allocation),
	}
}

// Malloc allocates device memory of the specified size in bytes.
// The memory is aligned to MemoryAlignment for SIMD access.
//
// Example:
//
//	d_a, err := matbench.Malloc(m * k * 2) // m*k float16s
//	if err != nil {
//	    return err
//	}
//	defer matbench.Free(d_a)
func Malloc(size int) (DevicePtr, error) {
	return defaultPool.Allocate(size)
}

// Free releases device memory allocated by Malloc. The block may be
// retained in the pool for future allocations.
func Free(ptr DevicePtr) error {
	return defaultPool.Free(ptr)
}

// Allocate allocates memory from the pool
func (mp *MemoryPool) Allocate(size int) (DevicePtr, error) {
	if size <= 0 {
		return DevicePtr{}, ErrInvalidSize
	}

	mp.mu.Lock()
	defer mp.mu.Unlock()

	alignedSize := (size + MemoryAlignment - 1) &^ (MemoryAlignment - 1)

	// Try to reuse from free list
	for i, alloc := range mp.freeList {
		if alloc.size >= alignedSize {
			mp.freeList = append(mp.freeList[:i], mp.freeList[i+1:]...)
			alloc.used = true

			mp.totalAlloc += int64(alloc.size)
			if mp.totalAlloc > mp.peakAlloc {
				mp.peakAlloc = mp.totalAlloc
			}

			return DevicePtr{ptr: alloc.ptr, size: size}, nil
		}
	}

	// Over-allocate so the base pointer can be rounded up to the
	// alignment boundary.
	buf := make([]byte, alignedSize+MemoryAlignment)
	base := uintptr(unsafe.Pointer(&buf[0]))
	off := (MemoryAlignment - int(base%MemoryAlignment)) % MemoryAlignment
	ptr := unsafe.Pointer(&buf[off])

	alloc := &allocation{
		buf:  buf,
		ptr:  ptr,
		size: alignedSize,
		used: true,
	}
	mp.allocated[uintptr(ptr)] = alloc

	mp.totalAlloc += int64(alignedSize)
	if mp.totalAlloc > mp.peakAlloc {
		mp.peakAlloc = mp.totalAlloc
	}

	return DevicePtr{ptr: ptr, size: size}, nil
}

// Free returns memory to the pool
func (mp *MemoryPool) Free(ptr DevicePtr) error {
	if ptr.ptr == nil {
		return nil
	}

	mp.mu.Lock()
	defer mp.mu.Unlock()

	alloc, ok := mp.allocated[uintptr(ptr.ptr)]
	if !ok {
		return NewDeviceError("Free", "pointer not found in allocation pool", nil)
	}
	if !alloc.used {
		return ErrDoubleFree
	}

	alloc.used = false
	mp.freeList = append(mp.freeList, alloc)
	mp.totalAlloc -= int64(alloc.size)

	return nil
}

// GetStats returns memory pool statistics
func (mp *MemoryPool) GetStats() (allocated, peak int64) {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	return mp.totalAlloc, mp.peakAlloc
}

// DevicePtr methods for convenience

// Float32 returns a float32 slice view of the device memory.
// The slice can be used directly for reading and writing data.
func (d DevicePtr) Float32() []float32 {
	if d.ptr == nil {
		return nil
	}
	return (*[1 << 28]float32)(d.ptr)[: d.size/4 : d.size/4]
}

// Float16 returns a half-precision slice view of the device memory.
// Elements are IEEE 754 binary16 values.
func (d DevicePtr) Float16() []float16.Float16 {
	if d.ptr == nil {
		return nil
	}
	return (*[1 << 29]float16.Float16)(d.ptr)[: d.size/2 : d.size/2]
}

// Byte returns a byte slice view of the full memory region.
func (d DevicePtr) Byte() []byte {
	if d.ptr == nil {
		return nil
	}
	return (*[1 << 30]byte)(d.ptr)[:d.size:d.size]
}

// Size returns the size in bytes of the memory region
func (d DevicePtr) Size() int {
	return d.size
}

// getSystemMemory returns total system memory in bytes
func getSystemMemory() uint64 {
	// Simplified; the value is only reported in the CLI banner
	return 16 * 1024 * 1024 * 1024
}
