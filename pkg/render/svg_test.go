package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/dashgrid/pkg/grid"
)

func testSnapshot() grid.Snapshot {
	return grid.Snapshot{Widgets: []grid.Widget{
		{ID: "chart-1", Kind: grid.KindChart, Rect: grid.Rect{X: 0, Y: 0, W: 6, H: 3}},
		{ID: "kpi-1", Kind: grid.KindKPI, Rect: grid.Rect{X: 6, Y: 0, W: 3, H: 1}},
		{ID: "text-1", Kind: grid.KindText, Rect: grid.Rect{X: 0, Y: 3, W: 12, H: 2}},
	}}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testSnapshot(), 12))

	if !strings.HasPrefix(svg, "<svg xmlns=") {
		t.Error("output should start with an svg element")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("output should end with a closing svg tag")
	}

	// One block per widget plus the background rect.
	if got := strings.Count(svg, "<rect"); got != 4 {
		t.Errorf("found %d rects, want 4", got)
	}

	// Kind colors appear.
	for _, fill := range []string{kindFills[grid.KindChart], kindFills[grid.KindKPI], kindFills[grid.KindText]} {
		if !strings.Contains(svg, fill) {
			t.Errorf("output missing kind fill %s", fill)
		}
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	a := RenderSVG(testSnapshot(), 12, WithLabels())
	b := RenderSVG(testSnapshot(), 12, WithLabels())
	if !bytes.Equal(a, b) {
		t.Error("rendering the same snapshot twice should be byte-identical")
	}

	// Widget order in the input must not affect output.
	shuffled := grid.Snapshot{Widgets: []grid.Widget{
		testSnapshot().Widgets[2],
		testSnapshot().Widgets[0],
		testSnapshot().Widgets[1],
	}}
	c := RenderSVG(shuffled, 12, WithLabels())
	if !bytes.Equal(a, c) {
		t.Error("input widget order should not affect output")
	}
}

func TestRenderSVGLabels(t *testing.T) {
	svg := string(RenderSVG(testSnapshot(), 12, WithLabels()))
	if !strings.Contains(svg, "chart-1") {
		t.Error("labels should include widget IDs")
	}
	if !strings.Contains(svg, "chart 6x3") {
		t.Error("labels should include kind and span")
	}

	unlabeled := string(RenderSVG(testSnapshot(), 12))
	if strings.Contains(unlabeled, "chart-1") {
		t.Error("IDs should not appear without WithLabels")
	}
}

func TestRenderSVGTitleEscaped(t *testing.T) {
	svg := string(RenderSVG(testSnapshot(), 12, WithTitle("a <b> & c")))
	if strings.Contains(svg, "<b>") {
		t.Error("title should be HTML-escaped")
	}
	if !strings.Contains(svg, "a &lt;b&gt; &amp; c") {
		t.Error("escaped title should appear in output")
	}
}

func TestRenderSVGEmptySnapshot(t *testing.T) {
	svg := string(RenderSVG(grid.Snapshot{}, 12, WithGridlines()))
	if !strings.HasPrefix(svg, "<svg") {
		t.Error("empty snapshot should still render a valid frame")
	}
	// One row of gridlines plus the background.
	if got := strings.Count(svg, "<rect"); got != 13 {
		t.Errorf("found %d rects, want 13 (background + 12 cells)", got)
	}
}

func TestRenderSVGCellSize(t *testing.T) {
	svg := string(RenderSVG(grid.Snapshot{}, 2, WithCellSize(50, 40), WithGutter(10)))
	// width = 2*50 + 3*10 = 130
	if !strings.Contains(svg, `viewBox="0 0 130`) {
		t.Errorf("custom cell size not reflected in viewBox: %s", svg[:80])
	}
}
