// Package render generates visual output for dashboard layouts.
//
// The only format is SVG: a schematic view of the grid with one block
// per widget, colored by kind. It exists for CLI inspection and for
// snapshot artifacts, not for the production frontend, which renders
// layouts natively.
package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/dashgrid/pkg/grid"
)

// Defaults for the schematic rendering, in pixels.
const (
	DefaultCellWidth  = 96
	DefaultCellHeight = 64
	DefaultGutter     = 8

	// headerMargin is the space reserved at the top for the title line.
	headerMargin = 36
)

// kindFills maps widget kinds to block colors.
var kindFills = map[grid.Kind]string{
	grid.KindChart: "#4e79a7",
	grid.KindKPI:   "#59a14f",
	grid.KindTable: "#f28e2b",
	grid.KindText:  "#b07aa1",
}

const defaultFill = "#9c9c9c"

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	cellW    int
	cellH    int
	gutter   int
	title    string
	labels   bool
	gridline bool
}

// WithCellSize overrides the pixel size of one grid cell.
func WithCellSize(w, h int) SVGOption {
	return func(r *svgRenderer) { r.cellW, r.cellH = w, h }
}

// WithGutter overrides the pixel gap between cells.
func WithGutter(px int) SVGOption { return func(r *svgRenderer) { r.gutter = px } }

// WithTitle adds a title line above the grid.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithLabels draws widget IDs and kinds inside the blocks.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithGridlines draws the empty cells of the grid as faint outlines.
func WithGridlines() SVGOption { return func(r *svgRenderer) { r.gridline = true } }

// RenderSVG renders a snapshot as a schematic SVG for the given column
// count. Output is deterministic: widgets are drawn in position order.
func RenderSVG(snap grid.Snapshot, columns int, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	rows := snap.MaxBottom()
	if rows < 1 {
		rows = 1
	}

	width := columns*r.cellW + (columns+1)*r.gutter
	height := rows*r.cellH + (rows+1)*r.gutter + headerMargin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%d" height="%d" fill="#fafafa"/>`+"\n", width, height)

	if r.title != "" {
		fmt.Fprintf(&buf, `  <text x="%d" y="24" font-family="sans-serif" font-size="16" fill="#333">%s</text>`+"\n",
			r.gutter, html.EscapeString(r.title))
	}

	fmt.Fprintf(&buf, `  <g transform="translate(0, %d)">`+"\n", headerMargin)

	if r.gridline {
		r.renderGridlines(&buf, columns, rows)
	}
	for _, w := range snap.Sorted() {
		r.renderWidget(&buf, w)
	}

	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		cellW:  DefaultCellWidth,
		cellH:  DefaultCellHeight,
		gutter: DefaultGutter,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// cellOrigin returns the pixel position of a grid cell's top-left corner.
func (r *svgRenderer) cellOrigin(x, y int) (px, py int) {
	px = x*r.cellW + (x+1)*r.gutter
	py = y*r.cellH + (y+1)*r.gutter
	return px, py
}

// blockSize returns the pixel span of a widget covering w x h cells,
// including the gutters it swallows.
func (r *svgRenderer) blockSize(w, h int) (pw, ph int) {
	pw = w*r.cellW + (w-1)*r.gutter
	ph = h*r.cellH + (h-1)*r.gutter
	return pw, ph
}

func (r *svgRenderer) renderWidget(buf *bytes.Buffer, w grid.Widget) {
	px, py := r.cellOrigin(w.Rect.X, w.Rect.Y)
	pw, ph := r.blockSize(w.Rect.W, w.Rect.H)

	fill, ok := kindFills[w.Kind]
	if !ok {
		fill = defaultFill
	}

	fmt.Fprintf(buf, `    <rect x="%d" y="%d" width="%d" height="%d" rx="4" fill="%s" fill-opacity="0.85" stroke="#333" stroke-width="1"/>`+"\n",
		px, py, pw, ph, fill)

	if r.labels {
		fmt.Fprintf(buf, `    <text x="%d" y="%d" font-family="sans-serif" font-size="12" fill="#fff">%s</text>`+"\n",
			px+8, py+18, html.EscapeString(w.ID))
		fmt.Fprintf(buf, `    <text x="%d" y="%d" font-family="sans-serif" font-size="10" fill="#fff" fill-opacity="0.8">%s %dx%d</text>`+"\n",
			px+8, py+32, html.EscapeString(string(w.Kind)), w.Rect.W, w.Rect.H)
	}
}

func (r *svgRenderer) renderGridlines(buf *bytes.Buffer, columns, rows int) {
	for y := 0; y < rows; y++ {
		for x := 0; x < columns; x++ {
			px, py := r.cellOrigin(x, y)
			fmt.Fprintf(buf, `    <rect x="%d" y="%d" width="%d" height="%d" fill="none" stroke="#ddd" stroke-width="1"/>`+"\n",
				px, py, r.cellW, r.cellH)
		}
	}
}
