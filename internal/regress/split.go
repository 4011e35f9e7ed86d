package regress

import "math/rand"

// Split shuffles row indices with a fixed seed and partitions them into
// train and validation sets. The same seed always yields the same split,
// which keeps retraining reproducible.
func Split(n int, validationRatio float64, seed int64) (train, validation []int) {
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	nVal := int(float64(n) * validationRatio)
	if nVal < 1 && n > 1 {
		nVal = 1
	}
	validation = perm[:nVal]
	train = perm[nVal:]
	return train, validation
}

// Take gathers the rows and targets at the given indices.
func Take(x [][]float64, y []float64, idx []int) ([][]float64, []float64) {
	xs := make([][]float64, len(idx))
	ys := make([]float64, len(idx))
	for i, j := range idx {
		xs[i] = x[j]
		ys[i] = y[j]
	}
	return xs, ys
}
