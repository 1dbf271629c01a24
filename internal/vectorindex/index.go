// Package vectorindex provides exact nearest-neighbour search over
// fixed-dimension float32 vectors.
package vectorindex

import (
	"errors"
	"fmt"
	"slices"

	"github.com/viant/vec/search"
)

var (
	// ErrDimensionMismatch is returned when vectors of different dimensions
	// are mixed in one index or a query does not match the index dimension.
	ErrDimensionMismatch = errors.New("vectorindex: dimension mismatch")

	// ErrEmptyIndex is returned when querying an index built from no vectors.
	ErrEmptyIndex = errors.New("vectorindex: index is empty")

	// ErrInvalidK is returned when k is less than 1.
	ErrInvalidK = errors.New("vectorindex: k must be at least 1")
)

// Neighbor is a single query result.
type Neighbor struct {
	// Index is the insertion position of the vector passed to Build.
	Index int

	// Distance is the Euclidean distance to the query vector.
	Distance float32
}

// Index is an immutable brute-force L2 index. It is safe for concurrent
// queries once built.
type Index struct {
	vecs [][]float32
	dim  int
}

// Build creates an index over vectors. Every vector must have the same
// non-zero dimension. An empty input yields an empty index.
func Build(vectors [][]float32) (*Index, error) {
	if len(vectors) == 0 {
		return &Index{}, nil
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: vector 0 is empty", ErrDimensionMismatch)
	}
	vecs := make([][]float32, len(vectors))
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vector %d has %d dims, want %d", ErrDimensionMismatch, i, len(v), dim)
		}
		vecs[i] = slices.Clone(v)
	}
	return &Index{vecs: vecs, dim: dim}, nil
}

// Len returns the number of indexed vectors.
func (x *Index) Len() int { return len(x.vecs) }

// Dim returns the vector dimension, or 0 for an empty index.
func (x *Index) Dim() int { return x.dim }

// Query returns the min(k, Len()) nearest vectors in ascending distance.
// Ties are broken by the lowest insertion index, so the result for a
// smaller k is always a prefix of the result for a larger k.
func (x *Index) Query(vec []float32, k int) ([]Neighbor, error) {
	if k < 1 {
		return nil, ErrInvalidK
	}
	if len(x.vecs) == 0 {
		return nil, ErrEmptyIndex
	}
	if len(vec) != x.dim {
		return nil, fmt.Errorf("%w: query has %d dims, want %d", ErrDimensionMismatch, len(vec), x.dim)
	}

	q := search.Float32s(vec)
	all := make([]Neighbor, len(x.vecs))
	for i, v := range x.vecs {
		all[i] = Neighbor{Index: i, Distance: q.EuclideanDistance(v)}
	}
	slices.SortStableFunc(all, func(a, b Neighbor) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return a.Index - b.Index
	})

	if k > len(all) {
		k = len(all)
	}
	return all[:k], nil
}
