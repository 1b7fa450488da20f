package grid

import "testing"

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"identical", Rect{0, 0, 4, 2}, Rect{0, 0, 4, 2}, true},
		{"partial overlap", Rect{0, 0, 4, 2}, Rect{2, 1, 4, 2}, true},
		{"contained", Rect{0, 0, 6, 6}, Rect{2, 2, 1, 1}, true},
		{"touching right edge", Rect{0, 0, 4, 2}, Rect{4, 0, 4, 2}, false},
		{"touching bottom edge", Rect{0, 0, 4, 2}, Rect{0, 2, 4, 2}, false},
		{"disjoint horizontal", Rect{0, 0, 2, 2}, Rect{5, 0, 2, 2}, false},
		{"disjoint vertical", Rect{0, 0, 2, 2}, Rect{0, 5, 2, 2}, false},
		{"single cell overlap", Rect{0, 0, 2, 2}, Rect{1, 1, 2, 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Overlap is symmetric.
			if got := Overlaps(tt.b, tt.a); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestComparePosition(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want int
	}{
		{"lower row first", Rect{X: 5, Y: 0}, Rect{X: 0, Y: 1}, -1},
		{"same row lower column first", Rect{X: 0, Y: 2}, Rect{X: 4, Y: 2}, -1},
		{"equal", Rect{X: 3, Y: 3}, Rect{X: 3, Y: 3}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComparePosition(tt.a, tt.b); got != tt.want {
				t.Errorf("ComparePosition(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if tt.want != 0 {
				if got := ComparePosition(tt.b, tt.a); got != -tt.want {
					t.Errorf("ComparePosition(%v, %v) = %d, want %d", tt.b, tt.a, got, -tt.want)
				}
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := Rect{X: 2, Y: 3, W: 4, H: 5}
	if r.Right() != 6 {
		t.Errorf("Right() = %d, want 6", r.Right())
	}
	if r.Bottom() != 8 {
		t.Errorf("Bottom() = %d, want 8", r.Bottom())
	}
}
