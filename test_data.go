package matbench

// GenerateFloat32 generates deterministic float32 test data using a
// linear congruential generator (LCG). Tests use this instead of the
// seed-free production fill so kernel-vs-reference comparisons are
// reproducible across runs.
//
// Example:
//
//	data := GenerateFloat32(1024, 12345)
func GenerateFloat32(size int, seed uint64) []float32 {
	data := make([]float32, size)
	rng := seed
	for i := range data {
		rng = rng*1103515245 + 12345                    // LCG parameters from Numerical Recipes
		data[i] = float32(rng%(1<<32)) / float32(1<<32) // Normalize to [0, 1)
	}
	return data
}

// GenerateMatrixFloat32 generates a deterministic matrix in row-major
// order.
func GenerateMatrixFloat32(rows, cols int, seed uint64) []float32 {
	return GenerateFloat32(rows*cols, seed)
}
