package viz

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Set sets a pixel at (x, y) in sub-pixel coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Isobars traces the boundaries between levels of a plane, sampling the
// nearest node for every sub-pixel. Rows of m run left to right.
func Isobars(m *mat.Dense, w, h int, levels []float64) *Canvas {
	c := NewCanvas(w, h)
	nr, nc := m.Dims()
	pw, ph := w*2, h*4

	band := func(px, py int) int {
		i := min(px*nr/pw, nr-1)
		j := min((ph-1-py)*nc/ph, nc-1)
		v := m.At(i, j)
		if math.IsNaN(v) {
			return -1
		}
		b := 0
		for _, l := range levels {
			if v >= l {
				b++
			}
		}
		return b
	}

	for py := 0; py < ph; py++ {
		for px := 0; px < pw; px++ {
			b := band(px, py)
			if (px+1 < pw && band(px+1, py) != b) || (py+1 < ph && band(px, py+1) != b) {
				c.Set(px, py)
			}
		}
	}
	return c
}
