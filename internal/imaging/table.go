package imaging

import (
	"image"
	"image/color"
	"math"
)

// Corner anchors a table inside the axes.
type Corner int

const (
	UpperRight Corner = iota
	LowerRight
)

// DefaultColumnWidth is the width of one data column as a fraction of the
// axes width.
const DefaultColumnWidth = 0.07

// tablePad is the gap between a table and the axes edge, as a fraction of
// the axes size.
const tablePad = 0.02

// Table is a grid of text cells with a header row and optional row labels.
type Table struct {
	ColLabels []string
	RowLabels []string
	Cells     [][]string
	ColWidth  float64
}

// TableLayout reports where a table landed and how much of it was drawn.
type TableLayout struct {
	Bounds image.Rectangle
	Rows   int // data rows drawn
	Total  int // data rows requested
}

// Truncated reports whether some data rows did not fit on the canvas.
func (l TableLayout) Truncated() bool {
	return l.Rows < l.Total
}

var (
	cellEdge   = color.RGBA{0, 0, 0, 255}
	cellFace   = color.RGBA{255, 255, 255, 255}
	cellTextFg = color.RGBA{0, 0, 0, 255}
)

// DrawTable draws t against the given corner of the axes. Column labels are
// centred, row labels are left aligned and cells are right aligned. Rows that
// would run off the canvas are dropped.
func DrawTable(c *Canvas, t Table, corner Corner) TableLayout {
	layout := TableLayout{Total: len(t.Cells)}
	ncols := len(t.ColLabels)
	for _, row := range t.Cells {
		ncols = max(ncols, len(row))
	}
	if ncols == 0 {
		return layout
	}

	tr := c.text
	pad := max(2, tr.lineHeight()/3)
	rowH := tr.lineHeight() + 2*pad

	colFrac := t.ColWidth
	if colFrac <= 0 {
		colFrac = DefaultColumnWidth
	}
	colW := int(math.Round(colFrac * float64(c.Axes.Dx())))

	labelW := 0
	if len(t.RowLabels) > 0 {
		for _, l := range t.RowLabels {
			labelW = max(labelW, tr.width(l))
		}
		labelW += 2 * pad
	}
	width := labelW + ncols*colW

	padX := int(math.Round(tablePad * float64(c.Axes.Dx())))
	padY := int(math.Round(tablePad * float64(c.Axes.Dy())))
	right := c.Axes.Max.X - padX
	left := right - width

	canvas := c.Bounds()
	var fit int
	switch corner {
	case LowerRight:
		fit = (c.Axes.Max.Y-padY-canvas.Min.Y)/rowH - 1
	default:
		fit = (canvas.Max.Y-c.Axes.Min.Y-padY)/rowH - 1
	}
	layout.Rows = max(0, min(len(t.Cells), fit))

	height := (layout.Rows + 1) * rowH
	var top int
	switch corner {
	case LowerRight:
		top = c.Axes.Max.Y - padY - height
	default:
		top = c.Axes.Min.Y + padY
	}
	layout.Bounds = image.Rect(left, top, right, top+height)

	cell := func(x, y, w int, text string, align int) {
		r := image.Rect(x, y, x+w, y+rowH)
		fillRect(c.Img, r, cellFace)
		strokeRect(c.Img, r, cellEdge)
		if text == "" {
			return
		}
		tx := x + pad
		switch align {
		case 0:
			tx = x + (w-tr.width(text))/2
		case 1:
			tx = x + w - pad - tr.width(text)
		}
		tr.draw(c.Img, tx, y+pad, text, cellTextFg)
	}

	y := top
	for i := 0; i < ncols; i++ {
		label := ""
		if i < len(t.ColLabels) {
			label = t.ColLabels[i]
		}
		cell(left+labelW+i*colW, y, colW, label, 0)
	}
	for r := 0; r < layout.Rows; r++ {
		y += rowH
		if labelW > 0 {
			label := ""
			if r < len(t.RowLabels) {
				label = t.RowLabels[r]
			}
			cell(left, y, labelW, label, -1)
		}
		for i := 0; i < ncols; i++ {
			text := ""
			if i < len(t.Cells[r]) {
				text = t.Cells[r][i]
			}
			cell(left+labelW+i*colW, y, colW, text, 1)
		}
	}

	return layout
}
