package lattice

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestNew_InvalidSize(t *testing.T) {
	for _, n := range []int{0, -1, -10} {
		if _, err := New(n); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("New(%d): expected ErrInvalidSize, got %v", n, err)
		}
	}
}

func TestFromRows(t *testing.T) {
	tests := []struct {
		name string
		rows [][]int
		err  error
	}{
		{"valid", [][]int{{1, 1}, {1, -1}}, nil},
		{"empty", [][]int{}, ErrInvalidSize},
		{"ragged", [][]int{{1, 1}, {1}}, ErrInvalidSize},
		{"bad spin", [][]int{{1, 0}, {1, 1}}, ErrInvalidSpin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := FromRows(tt.rows)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("expected %v, got %v", tt.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if l.Sum() != 2 {
				t.Errorf("expected sum 2, got %d", l.Sum())
			}
		})
	}
}

func TestNeighbors_Wrap(t *testing.T) {
	rows := [][]int{
		{1, 1, 1, -1},
		{1, 1, 1, 1},
		{1, 1, 1, 1},
		{-1, 1, 1, 1},
	}
	l, err := FromRows(rows)
	if err != nil {
		t.Fatal(err)
	}

	nb := l.Neighbors(0, 0)
	// left wraps to (0,3), top wraps to (3,0)
	if nb[0] != -1 {
		t.Errorf("left neighbor of (0,0) should be (0,3)=-1, got %d", nb[0])
	}
	if nb[2] != -1 {
		t.Errorf("top neighbor of (0,0) should be (3,0)=-1, got %d", nb[2])
	}
	if nb[1] != 1 || nb[3] != 1 {
		t.Errorf("unexpected right/bottom neighbors: %v", nb)
	}

	nb = l.Neighbors(3, 3)
	// right wraps to (3,0), bottom wraps to (0,3)
	if nb[1] != -1 || nb[3] != -1 {
		t.Errorf("expected wrapped neighbors of (3,3) to be -1, got %v", nb)
	}
}

func TestAt_NegativeIndices(t *testing.T) {
	l, _ := FromRows([][]int{{1, -1}, {-1, 1}})
	if l.At(-1, -1) != l.At(1, 1) {
		t.Error("negative indices should wrap")
	}
	if l.At(5, 4) != l.At(1, 0) {
		t.Error("large indices should wrap")
	}
}

func TestFlip_Closure(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 0))
	l, err := NewRandom(5, r)
	if err != nil {
		t.Fatal(err)
	}
	if !l.Valid() {
		t.Fatal("random lattice invalid")
	}

	for k := 0; k < 1000; k++ {
		l.Flip(r.IntN(5), r.IntN(5))
		if !l.Valid() {
			t.Fatalf("lattice invalid after %d flips", k+1)
		}
	}
}

func TestFlip_Sum(t *testing.T) {
	l, _ := New(3)
	if l.Sum() != 9 {
		t.Fatalf("expected sum 9, got %d", l.Sum())
	}
	l.Flip(1, 1)
	if l.Sum() != 7 {
		t.Errorf("expected sum 7 after flip, got %d", l.Sum())
	}
	l.Flip(1, 1)
	if l.Sum() != 9 {
		t.Errorf("expected sum 9 after double flip, got %d", l.Sum())
	}
}

func TestClone_Independent(t *testing.T) {
	l, _ := New(2)
	c := l.Clone()
	c.Flip(0, 0)
	if l.At(0, 0) != 1 {
		t.Error("flip on clone changed original")
	}
	if c.String() != "-+\n++\n" {
		t.Errorf("unexpected clone string %q", c.String())
	}
}
