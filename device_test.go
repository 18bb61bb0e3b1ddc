package matbench

import (
	"testing"
	"unsafe"
)

func TestMallocAlignment(t *testing.T) {
	ptr := MallocOrFail(t, 1000)
	defer Free(ptr)

	addr := uintptr(unsafe.Pointer(&ptr.Byte()[0]))
	if addr%MemoryAlignment != 0 {
		t.Errorf("Allocation at %#x not aligned to %d bytes", addr, MemoryAlignment)
	}
}

func TestMallocInvalidSize(t *testing.T) {
	if _, err := Malloc(0); err == nil {
		t.Error("Expected error for zero-size allocation")
	}
	if _, err := Malloc(-4); err == nil {
		t.Error("Expected error for negative allocation")
	}
}

func TestDevicePtrViews(t *testing.T) {
	ptr := MallocOrFail(t, 64)
	defer Free(ptr)

	f32 := ptr.Float32()
	if len(f32) != 16 {
		t.Errorf("Float32 view has %d elements, want 16", len(f32))
	}

	f16 := ptr.Float16()
	if len(f16) != 32 {
		t.Errorf("Float16 view has %d elements, want 32", len(f16))
	}

	// Views share storage
	f32[0] = 0
	if b := ptr.Byte(); b[0] != 0 || b[1] != 0 || b[2] != 0 || b[3] != 0 {
		t.Error("Float32 and Byte views do not share storage")
	}
}

func TestDoubleFree(t *testing.T) {
	ptr := MallocOrFail(t, 128)

	if err := Free(ptr); err != nil {
		t.Fatalf("First free failed: %v", err)
	}
	if err := Free(ptr); err == nil {
		t.Error("Expected double free to be detected")
	} else if !IsDeviceError(err) {
		t.Errorf("Expected device error, got %v", err)
	}
}

func TestPoolReuse(t *testing.T) {
	pool := NewMemoryPool()

	p1, err := pool.Allocate(256)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if err := pool.Free(p1); err != nil {
		t.Fatalf("Free failed: %v", err)
	}

	p2, err := pool.Allocate(256)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}

	if p1.ptr != p2.ptr {
		t.Error("Pool did not reuse the freed block")
	}

	allocated, peak := pool.GetStats()
	if allocated <= 0 || peak <= 0 {
		t.Errorf("Stats = (%d,%d), want positive", allocated, peak)
	}
}

func TestGetDevice(t *testing.T) {
	device := GetDevice()
	if device == nil {
		t.Fatal("GetDevice returned nil")
	}
	if device.NumCores <= 0 {
		t.Errorf("NumCores = %d, want positive", device.NumCores)
	}
}
