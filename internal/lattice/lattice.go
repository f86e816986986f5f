// Package lattice holds the spin configuration of a periodic square Ising lattice.
package lattice

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSize indicates a lattice side length below one.
	ErrInvalidSize = errors.New("lattice: size must be positive")

	// ErrInvalidSpin indicates a spin value other than +1 or -1.
	ErrInvalidSpin = errors.New("lattice: spin must be +1 or -1")
)

// Source is the subset of a random generator needed to draw an initial configuration.
type Source interface {
	IntN(n int) int
}

// Lattice is an N×N grid of ±1 spins stored in row-major order.
// Every index is taken modulo N, so there are no edges.
type Lattice struct {
	n     int
	spins []int8
	sum   int
}

// New returns an N×N lattice with every spin up.
func New(n int) (*Lattice, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, n)
	}
	l := &Lattice{n: n, spins: make([]int8, n*n), sum: n * n}
	for i := range l.spins {
		l.spins[i] = 1
	}
	return l, nil
}

// NewRandom returns an N×N lattice with each spin drawn uniformly from {+1, -1}.
func NewRandom(n int, src Source) (*Lattice, error) {
	l, err := New(n)
	if err != nil {
		return nil, err
	}
	l.sum = 0
	for i := range l.spins {
		if src.IntN(2) == 0 {
			l.spins[i] = 1
		} else {
			l.spins[i] = -1
		}
		l.sum += int(l.spins[i])
	}
	return l, nil
}

// FromRows builds a lattice from explicit rows. The input must be square and
// contain only +1 and -1.
func FromRows(rows [][]int) (*Lattice, error) {
	l, err := New(len(rows))
	if err != nil {
		return nil, err
	}
	l.sum = 0
	for i, row := range rows {
		if len(row) != l.n {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidSize, i, len(row), l.n)
		}
		for j, s := range row {
			if s != 1 && s != -1 {
				return nil, fmt.Errorf("%w: (%d,%d)=%d", ErrInvalidSpin, i, j, s)
			}
			l.spins[i*l.n+j] = int8(s)
			l.sum += s
		}
	}
	return l, nil
}

func (l *Lattice) Size() int { return l.n }

// Sites returns N².
func (l *Lattice) Sites() int { return len(l.spins) }

func (l *Lattice) wrap(k int) int {
	return (k%l.n + l.n) % l.n
}

func (l *Lattice) index(i, j int) int {
	return l.wrap(i)*l.n + l.wrap(j)
}

// At returns the spin at (i, j) with periodic wrapping.
func (l *Lattice) At(i, j int) int {
	return int(l.spins[l.index(i, j)])
}

// Neighbors returns the spins left, right, above and below (i, j).
func (l *Lattice) Neighbors(i, j int) [4]int {
	return [4]int{
		l.At(i, j-1),
		l.At(i, j+1),
		l.At(i-1, j),
		l.At(i+1, j),
	}
}

// NeighborSum is the sum of the four periodic neighbors of (i, j).
func (l *Lattice) NeighborSum(i, j int) int {
	nb := l.Neighbors(i, j)
	return nb[0] + nb[1] + nb[2] + nb[3]
}

// Flip negates the spin at (i, j).
func (l *Lattice) Flip(i, j int) {
	k := l.index(i, j)
	l.spins[k] = -l.spins[k]
	l.sum += 2 * int(l.spins[k])
}

// Sum returns the total magnetization.
func (l *Lattice) Sum() int { return l.sum }

// Valid reports whether every cell holds +1 or -1 and the cached sum agrees.
func (l *Lattice) Valid() bool {
	total := 0
	for _, s := range l.spins {
		if s != 1 && s != -1 {
			return false
		}
		total += int(s)
	}
	return total == l.sum
}

func (l *Lattice) Rows() [][]int {
	rows := make([][]int, l.n)
	for i := range rows {
		rows[i] = make([]int, l.n)
		for j := range rows[i] {
			rows[i][j] = int(l.spins[i*l.n+j])
		}
	}
	return rows
}

func (l *Lattice) Clone() *Lattice {
	c := &Lattice{n: l.n, spins: make([]int8, len(l.spins)), sum: l.sum}
	copy(c.spins, l.spins)
	return c
}

func (l *Lattice) String() string {
	var b strings.Builder
	for i := 0; i < l.n; i++ {
		for j := 0; j < l.n; j++ {
			if l.spins[i*l.n+j] > 0 {
				b.WriteByte('+')
			} else {
				b.WriteByte('-')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
