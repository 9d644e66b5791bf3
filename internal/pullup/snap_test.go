package pullup

import "testing"

func TestResolvePicksNearestSnapPoint(t *testing.T) {
	t.Parallel()

	points := SnapPoints{Collapsed: 100, Half: 350, Full: 600}
	cases := []struct {
		name   string
		height int
		want   int
	}{
		{"below range", 10, 100},
		{"at collapsed", 100, 100},
		{"near collapsed", 180, 100},
		{"near half", 300, 350},
		{"at half", 350, 350},
		{"near full", 520, 600},
		{"above range", 900, 600},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Resolve(tc.height, points); got != tc.want {
				t.Fatalf("Resolve(%d) = %d, want %d", tc.height, got, tc.want)
			}
		})
	}
}

func TestResolveTieBreaksTowardEarlierPoint(t *testing.T) {
	t.Parallel()

	points := SnapPoints{Collapsed: 100, Half: 300, Full: 500}
	if got := Resolve(200, points); got != 100 {
		t.Fatalf("midpoint between collapsed and half resolved to %d, want collapsed", got)
	}
	if got := Resolve(400, points); got != 300 {
		t.Fatalf("midpoint between half and full resolved to %d, want half", got)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	t.Parallel()

	points := Config{MinHeight: 100, MaxHeight: 600}.SnapPoints()
	for h := 0; h <= 700; h += 7 {
		first := Resolve(h, points)
		second := Resolve(h, points)
		if first != second {
			t.Fatalf("Resolve(%d) unstable: %d then %d", h, first, second)
		}
	}
}

func TestConfigSnapPointsDeriveFromBounds(t *testing.T) {
	t.Parallel()

	points := Config{MinHeight: 100, MaxHeight: 600}.SnapPoints()
	want := SnapPoints{Collapsed: 100, Half: 350, Full: 600}
	if points != want {
		t.Fatalf("snap points = %+v, want %+v", points, want)
	}

	defaults := Config{}.SnapPoints()
	if defaults.Collapsed != DefaultMinHeight || defaults.Full != DefaultMaxHeight {
		t.Fatalf("zero config snap points = %+v", defaults)
	}
}

func TestSnapPointsNextCycles(t *testing.T) {
	t.Parallel()

	points := SnapPoints{Collapsed: 100, Half: 350, Full: 600}
	if got := points.next(100); got != 350 {
		t.Fatalf("next from collapsed = %d, want half", got)
	}
	if got := points.next(350); got != 600 {
		t.Fatalf("next from half = %d, want full", got)
	}
	if got := points.next(600); got != 100 {
		t.Fatalf("next from full = %d, want collapsed (wrap)", got)
	}
}
