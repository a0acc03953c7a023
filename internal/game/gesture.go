package game

// gestureThreshold is the minimum drag distance along the dominant axis
// for a release to count as a directional answer. Shorter drags are
// inconclusive and produce no event.
const gestureThreshold = 50

// Point is a normalized pointer or touch sample.
type Point struct {
	X float64
	Y float64
}

// Resolve converts a drag delta into a direction. The dominant axis is
// whichever delta has the larger magnitude; the candidate direction is
// accepted only if that magnitude exceeds the threshold.
func Resolve(dx, dy float64) (Direction, bool) {
	if abs(dx) > abs(dy) {
		if abs(dx) <= gestureThreshold {
			return 0, false
		}
		if dx > 0 {
			return DirRight, true
		}
		return DirLeft, true
	}
	if abs(dy) <= gestureThreshold {
		return 0, false
	}
	if dy > 0 {
		return DirDown, true
	}
	return DirUp, true
}

// ResolveDrag resolves a full start-to-release drag.
func ResolveDrag(start, end Point) (Direction, bool) {
	return Resolve(end.X-start.X, end.Y-start.Y)
}

// KeyDirection maps the four arrow keys to directions, bypassing
// pointer tracking entirely.
func KeyDirection(key string) (Direction, bool) {
	switch key {
	case "ArrowUp":
		return DirUp, true
	case "ArrowDown":
		return DirDown, true
	case "ArrowLeft":
		return DirLeft, true
	case "ArrowRight":
		return DirRight, true
	}
	return 0, false
}

// Tracker accumulates pointer samples for one drag. It holds no
// session state; the resolved direction is fed to the engine as an
// explicit event.
type Tracker struct {
	start  Point
	live   Point
	active bool
}

// Begin records the drag origin.
func (t *Tracker) Begin(p Point) {
	t.start = p
	t.live = p
	t.active = true
}

// Move updates the live position while the drag is in progress.
func (t *Tracker) Move(p Point) {
	if t.active {
		t.live = p
	}
}

// End finishes the drag and resolves it. Inconclusive drags return
// ok=false.
func (t *Tracker) End() (Direction, bool) {
	if !t.active {
		return 0, false
	}
	t.active = false
	return ResolveDrag(t.start, t.live)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
