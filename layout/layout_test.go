package layout

import (
	"testing"
)

func TestCenter(t *testing.T) {
	tests := []struct {
		canvas, w, want int
	}{
		{400, 133, 133},
		{400, 400, 0},
		{400, 0, 200},
		{10, 3, 3},
		{10, 4, 3},
		{80, 31, 24},
		{100, 120, -10}, // wider than canvas overflows both sides
	}

	for _, tt := range tests {
		if got := Center(tt.canvas, tt.w); got != tt.want {
			t.Errorf("Center(%d, %d) = %d, want %d", tt.canvas, tt.w, got, tt.want)
		}
	}
}

// For any block that fits, the centered block stays inside the canvas
func TestCenter_Fits(t *testing.T) {
	for canvas := 0; canvas <= 64; canvas++ {
		for w := 0; w <= canvas; w++ {
			x := Center(canvas, w)
			if x < 0 || x+w > canvas {
				t.Fatalf("Center(%d, %d) = %d escapes canvas", canvas, w, x)
			}
		}
	}
}

func TestStack(t *testing.T) {
	timePos, datePos := Stack(Size{W: 200, H: 120}, Size{W: 150, H: 80}, 400, -65)

	if timePos != (Point{X: 100, Y: 0}) {
		t.Errorf("time at %+v", timePos)
	}
	if datePos != (Point{X: 125, Y: 55}) {
		t.Errorf("date at %+v", datePos)
	}
}

func TestStack_NegativeDateY(t *testing.T) {
	// A large negative offset puts the date above the canvas top
	_, datePos := Stack(Size{W: 10, H: 20}, Size{W: 10, H: 10}, 40, -65)
	if datePos.Y != -45 {
		t.Errorf("date y = %d, want -45", datePos.Y)
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		total    int
		percents []int
		want     []Span
	}{
		{24, []int{50, 50}, []Span{{0, 12}, {12, 12}}},
		{25, []int{50, 50}, []Span{{0, 12}, {12, 13}}},
		{10, []int{30, 30, 40}, []Span{{0, 3}, {3, 3}, {6, 4}}},
		{0, []int{50, 50}, []Span{{0, 0}, {0, 0}}},
		{7, []int{100}, []Span{{0, 7}}},
	}

	for _, tt := range tests {
		got := Split(tt.total, tt.percents...)
		if len(got) != len(tt.want) {
			t.Fatalf("Split(%d, %v) = %v", tt.total, tt.percents, got)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Split(%d, %v)[%d] = %+v, want %+v", tt.total, tt.percents, i, got[i], tt.want[i])
			}
		}
		if last := got[len(got)-1]; last.End() != tt.total {
			t.Errorf("Split(%d, %v) does not cover total: end %d", tt.total, tt.percents, last.End())
		}
	}
}
