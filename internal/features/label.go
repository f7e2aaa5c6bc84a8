// Package features finds connected ink regions in a cell image and isolates
// the one closest to the cell center.
package features

import (
	"errors"
	"image"
)

const (
	// NotBlackThreshold is the intensity above which a pixel counts as ink.
	NotBlackThreshold = 20

	// Background labels non-ink pixels.
	Background = -1

	// NoFeature is returned when a cell holds no ink within reach of its center.
	NoFeature = -1
)

// ErrShapeMismatch is returned when a cell and its label map disagree in size.
var ErrShapeMismatch = errors.New("shape mismatch")

// IsInk reports whether an intensity counts as ink.
func IsInk(v uint8) bool {
	return v > NotBlackThreshold
}

// LabelMap assigns every pixel of a cell a group id. Ink pixels that are
// 4-connected share an id; non-ink pixels are Background.
type LabelMap struct {
	Width, Height int
	labels        []int
	groups        int
}

// At returns the group id at column x, row y.
func (m *LabelMap) At(x, y int) int {
	return m.labels[y*m.Width+x]
}

// Groups returns the number of distinct ink groups. Ids run from 0 to Groups()-1.
func (m *LabelMap) Groups() int {
	return m.groups
}

// Size returns the number of pixels carrying the given id.
func (m *LabelMap) Size(group int) int {
	n := 0
	for _, l := range m.labels {
		if l == group {
			n++
		}
	}
	return n
}

// Matches reports whether the map was built for an image of this size.
func (m *LabelMap) Matches(img *image.Gray) bool {
	b := img.Bounds()
	return m.Width == b.Dx() && m.Height == b.Dy()
}

// Group labels the 4-connected ink regions of a cell. Pixels are scanned in
// row-major order and joined with their left and upper ink neighbours in a
// union-find over the dense pixel index. Final ids are numbered by first
// appearance in scan order.
func Group(cell *image.Gray) *LabelMap {
	b := cell.Bounds()
	w, h := b.Dx(), b.Dy()

	ink := make([]bool, w*h)
	uf := newUnionFind(w * h)

	for y := 0; y < h; y++ {
		row := cell.Pix[cell.PixOffset(b.Min.X, b.Min.Y+y):]
		for x := 0; x < w; x++ {
			if !IsInk(row[x]) {
				continue
			}
			i := y*w + x
			ink[i] = true
			if x > 0 && ink[i-1] {
				uf.union(i-1, i)
			}
			if y > 0 && ink[i-w] {
				uf.union(i-w, i)
			}
		}
	}

	m := &LabelMap{Width: w, Height: h, labels: make([]int, w*h)}
	ids := make([]int, w*h)
	for i := range ids {
		ids[i] = Background
	}
	for i := range m.labels {
		if !ink[i] {
			m.labels[i] = Background
			continue
		}
		root := uf.find(i)
		if ids[root] == Background {
			ids[root] = m.groups
			m.groups++
		}
		m.labels[i] = ids[root]
	}
	return m
}

// unionFind is a disjoint-set forest with path halving and union by rank.
type unionFind struct {
	parent []int
	rank   []uint8
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]uint8, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(i int) int {
	for uf.parent[i] != i {
		uf.parent[i] = uf.parent[uf.parent[i]]
		i = uf.parent[i]
	}
	return i
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	switch {
	case uf.rank[ra] < uf.rank[rb]:
		uf.parent[ra] = rb
	case uf.rank[ra] > uf.rank[rb]:
		uf.parent[rb] = ra
	default:
		uf.parent[rb] = ra
		uf.rank[ra]++
	}
}
