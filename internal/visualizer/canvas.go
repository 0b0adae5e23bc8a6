package visualizer

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

type cell struct {
	ch    rune
	color colorRGB
}

// grid is a rows x cols block of colored terminal cells.
type grid struct {
	cols, rows int
	cells      []cell
}

func newGrid(cols, rows int) *grid {
	g := &grid{cols: cols, rows: rows, cells: make([]cell, cols*rows)}
	for i := range g.cells {
		g.cells[i].ch = ' '
	}
	return g
}

func (g *grid) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return nil
	}
	return &g.cells[row*g.cols+col]
}

func (g *grid) set(col, row int, ch rune, c colorful.Color) {
	if p := g.at(col, row); p != nil {
		p.ch = ch
		p.color = toRGB(c)
	}
}

func (g *grid) render(p colorProfile) string {
	var sb strings.Builder
	sb.Grow(len(g.cells) * 4)
	color := newANSIState(p)
	for row := range g.rows {
		if row > 0 {
			color.reset(&sb)
			sb.WriteByte('\n')
		}
		for col := range g.cols {
			c := g.cells[row*g.cols+col]
			if c.ch != ' ' {
				color.set(&sb, c.color)
			}
			sb.WriteRune(c.ch)
		}
	}
	color.reset(&sb)
	return sb.String()
}
