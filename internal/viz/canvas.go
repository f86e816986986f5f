package viz

import (
	"strings"

	"github.com/san-kum/isingsim/internal/lattice"
)

const brailleBlank = '⠀'

// dotBits maps a position inside one braille cell (row 0-3, column 0-1) to
// its dot bit.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas packs a 2x4 block of spins into every braille character, so a
// 64x64 lattice fits in 32 columns and 16 rows.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(cols, rows int) *Canvas {
	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = make([]rune, cols)
	}
	c := &Canvas{Width: cols, Height: rows, Grid: grid}
	c.Clear()
	return c
}

// CanvasFor returns the smallest canvas holding one dot per site of l.
func CanvasFor(l *lattice.Lattice) *Canvas {
	n := l.Size()
	return NewCanvas((n+1)/2, (n+3)/4)
}

// Set lights the dot for column x, row y. Dots outside the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= 2*c.Width || y >= 4*c.Height {
		return
	}
	c.Grid[y/4][x/2] |= dotBits[y%4][x%2]
}

func (c *Canvas) Clear() {
	for r := range c.Grid {
		for k := range c.Grid[r] {
			c.Grid[r][k] = brailleBlank
		}
	}
}

// DrawLattice redraws the canvas with a lit dot for every up spin.
func (c *Canvas) DrawLattice(l *lattice.Lattice) {
	c.Clear()
	n := l.Size()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if l.At(i, j) > 0 {
				c.Set(j, i)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}
