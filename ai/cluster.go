package ai

// ClusterModel holds the K fixed centroids fitted offline (K=10 in the
// reference configuration). Assignment is nearest-centroid by Euclidean
// distance in TF-IDF space.
type ClusterModel struct {
	centroids [][]float64
	// squared norms precomputed per centroid, distance only needs the
	// cross term per query
	norms []float64
}

// NewClusterModel builds the model from exported centroid rows.
func NewClusterModel(centroids [][]float64) *ClusterModel {
	norms := make([]float64, len(centroids))
	for i, c := range centroids {
		var sum float64
		for _, x := range c {
			sum += x * x
		}
		norms[i] = sum
	}
	return &ClusterModel{centroids: centroids, norms: norms}
}

// K returns the number of centroids.
func (m *ClusterModel) K() int {
	return len(m.centroids)
}

// Assign returns the id of the centroid closest to vec. Deterministic:
// ties resolve to the lowest cluster id.
func (m *ClusterModel) Assign(vec SparseVector) int {
	vecNorm := vec.Norm()
	vecNormSq := vecNorm * vecNorm

	best := 0
	bestDist := vecNormSq - 2*m.cross(vec, 0) + m.norms[0]
	for i := 1; i < len(m.centroids); i++ {
		dist := vecNormSq - 2*m.cross(vec, i) + m.norms[i]
		if dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

// cross computes the inner product between a sparse query and a dense centroid.
func (m *ClusterModel) cross(vec SparseVector, centroid int) float64 {
	row := m.centroids[centroid]
	var sum float64
	for idx, val := range vec.Values {
		if idx < len(row) {
			sum += val * row[idx]
		}
	}
	return sum
}
