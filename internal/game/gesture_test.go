package game

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		want   Direction
		ok     bool
	}{
		{"below threshold horizontal", 49, 0, 0, false},
		{"at threshold horizontal", 50, 0, 0, false},
		{"just past threshold right", 51, 0, DirRight, true},
		{"just past threshold left", -51, 0, DirLeft, true},
		{"below threshold vertical", 0, 49, 0, false},
		{"just past threshold down", 0, 51, DirDown, true},
		{"just past threshold up", 0, -51, DirUp, true},
		{"horizontal axis dominates", 80, 60, DirRight, true},
		{"vertical axis dominates", 60, -80, DirUp, true},
		{"dominant axis below threshold", 40, 30, 0, false},
		{"no movement", 0, 0, 0, false},
		{"equal deltas treated as vertical", 70, 70, DirDown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.dx, tt.dy)
			if ok != tt.ok {
				t.Fatalf("Resolve(%v, %v) ok = %v, want %v", tt.dx, tt.dy, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Resolve(%v, %v) = %v, want %v", tt.dx, tt.dy, got, tt.want)
			}
		})
	}
}

func TestKeyDirection(t *testing.T) {
	tests := []struct {
		key  string
		want Direction
		ok   bool
	}{
		{"ArrowUp", DirUp, true},
		{"ArrowDown", DirDown, true},
		{"ArrowLeft", DirLeft, true},
		{"ArrowRight", DirRight, true},
		{"Enter", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := KeyDirection(tt.key)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("KeyDirection(%q) = (%v, %v), want (%v, %v)", tt.key, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestTracker(t *testing.T) {
	t.Run("full drag resolves", func(t *testing.T) {
		var tr Tracker
		tr.Begin(Point{X: 100, Y: 100})
		tr.Move(Point{X: 120, Y: 100})
		tr.Move(Point{X: 160, Y: 110})
		dir, ok := tr.End()
		if !ok || dir != DirRight {
			t.Errorf("drag = (%v, %v), want (right, true)", dir, ok)
		}
	})

	t.Run("tap is inconclusive", func(t *testing.T) {
		var tr Tracker
		tr.Begin(Point{X: 100, Y: 100})
		if _, ok := tr.End(); ok {
			t.Error("tap without movement produced a direction")
		}
	})

	t.Run("end without begin", func(t *testing.T) {
		var tr Tracker
		if _, ok := tr.End(); ok {
			t.Error("release without a tracked drag produced a direction")
		}
	})

	t.Run("direction ordinal maps to option slot", func(t *testing.T) {
		// The answer layout depends on up=0, down=1, left=2, right=3.
		if DirUp != 0 || DirDown != 1 || DirLeft != 2 || DirRight != 3 {
			t.Errorf("direction ordinals = %d %d %d %d", DirUp, DirDown, DirLeft, DirRight)
		}
	})
}
