package world

import "testing"

func TestTileBlocks(t *testing.T) {
	centres := TileBlocks(1000, 800, 80, 20, Grid{Rows: 2, Cols: 5, Gap: 10, TopMargin: 50})
	if len(centres) != 10 {
		t.Fatalf("expected 10 blocks, got %d", len(centres))
	}

	wantX := []float32{320, 410, 500, 590, 680}
	for i, x := range wantX {
		if centres[i].X() != x || centres[i].Y() != 740 {
			t.Errorf("block %d: got %v, want (%v, 740)", i, centres[i], x)
		}
		if centres[i+5].Y() != 710 {
			t.Errorf("second row block %d: got y=%v, want 710", i, centres[i+5].Y())
		}
	}
}

func TestTileBlocksLimits(t *testing.T) {
	tests := []struct {
		name    string
		screenW float32
		screenH float32
		blockW  float32
		blockH  float32
		grid    Grid
		want    int
	}{
		{"columns capped to screen", 300, 800, 80, 20, Grid{Rows: 1, Cols: 10, Gap: 10}, 3},
		{"rows stop at half height", 1000, 200, 80, 40, Grid{Rows: 5, Cols: 1, Gap: 10}, 2},
		{"block wider than screen", 50, 800, 80, 20, Grid{Rows: 3, Cols: 3}, 0},
		{"no rows", 1000, 800, 80, 20, Grid{Cols: 3}, 0},
		{"degenerate block", 1000, 800, 0, 20, Grid{Rows: 1, Cols: 3}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TileBlocks(tt.screenW, tt.screenH, tt.blockW, tt.blockH, tt.grid)
			if len(got) != tt.want {
				t.Errorf("expected %d blocks, got %d", tt.want, len(got))
			}
		})
	}
}

func TestTileBlocksStayOnScreen(t *testing.T) {
	const screenW, screenH = 640, 480
	const bw, bh = 64, 16

	for _, c := range TileBlocks(screenW, screenH, bw, bh, Grid{Rows: 8, Cols: 20, Gap: 4, TopMargin: 20}) {
		r := RectAround(c.X(), c.Y(), bw, bh)
		if r.MinX < 0 || r.MaxX > screenW || r.MaxY > screenH || r.MinY < screenH/2 {
			t.Errorf("block %+v leaves the upper half of the screen", r)
		}
	}
}

func TestClampX(t *testing.T) {
	tests := []struct {
		x, half, lo, hi float32
		want            float32
	}{
		{50, 10, 0, 100, 50},
		{5, 10, 0, 100, 10},
		{95, 10, 0, 100, 90},
		{-500, 10, 0, 100, 10},
		{30, 60, 0, 100, 50},
		{30, 50, 0, 100, 50},
	}

	for _, tt := range tests {
		if got := ClampX(tt.x, tt.half, tt.lo, tt.hi); got != tt.want {
			t.Errorf("ClampX(%v, %v, %v, %v) = %v, want %v", tt.x, tt.half, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestRectOverlaps(t *testing.T) {
	a := Rect{0, 0, 10, 10}

	if !a.Overlaps(Rect{5, 5, 15, 15}) {
		t.Error("expected overlap")
	}
	if a.Overlaps(Rect{10, 0, 20, 10}) {
		t.Error("touching edges should not overlap")
	}
	if a.Overlaps(Rect{0, 20, 10, 30}) {
		t.Error("expected no overlap")
	}
}
