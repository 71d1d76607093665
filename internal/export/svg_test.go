package export

import (
	"strings"
	"testing"

	"github.com/san-kum/greyspace/internal/level"
	"github.com/san-kum/greyspace/internal/space"
	"github.com/san-kum/greyspace/internal/storage"
)

func TestSpaceToSVG(t *testing.T) {
	sp, err := level.Build(level.Preset("orbit"), space.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	svg := SpaceToSVG(sp, 2)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("expected a complete svg document")
	}
	if got := strings.Count(svg, "<rect "); got != 100*100 {
		t.Errorf("expected one rect per cell, got %d", got)
	}
	// two planets, one exit, one fuel, the ship
	if got := strings.Count(svg, "<circle "); got != 5 {
		t.Errorf("expected 5 circles, got %d", got)
	}
	if SpaceToSVG(nil, 1) != "" {
		t.Error("expected empty output for nil space")
	}
}

func TestGrey(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "#000000"},
		{1, "#ffffff"},
		{2, "#ffffff"},
		{-1, "#000000"},
	}
	for _, tt := range tests {
		if got := grey(tt.v); got != tt.want {
			t.Errorf("grey(%v) = %s, want %s", tt.v, got, tt.want)
		}
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	frames := []storage.FrameRecord{
		{Frame: 1, ShipX: 0, ShipY: 0, Fired: true},
		{Frame: 2, ShipX: 1, ShipY: 0},
		{Frame: 3, ShipX: 2, ShipY: 1},
	}
	svg := TrajectoryToSVG(frames, 200, 100, "#00ff00")
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("expected stroke color")
	}
	if strings.Count(svg, " L") != 2 {
		t.Error("expected two line segments")
	}
	if strings.Count(svg, "<circle ") != 1 {
		t.Error("expected one shot marker")
	}
	if TrajectoryToSVG(frames[:1], 10, 10, "#fff") != "" {
		t.Error("expected empty output for a single point")
	}
}
