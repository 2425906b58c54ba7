package snake

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// Add returns p translated by v.
func (p Point) Add(v Velocity) Point {
	return Point{X: p.X + v.DX, Y: p.Y + v.DY}
}

// Velocity is a unit movement vector.
type Velocity struct {
	DX, DY int
}

// Neg returns the reversed vector.
func (v Velocity) Neg() Velocity {
	return Velocity{DX: -v.DX, DY: -v.DY}
}

// IsUnit reports whether v is one of the four axis unit vectors.
func (v Velocity) IsUnit() bool {
	_, ok := DirectionOf(v.DX, v.DY)
	return ok
}

// Direction returns the direction matching v. Zero vectors map to DirRight.
func (v Velocity) Direction() Direction {
	d, _ := DirectionOf(v.DX, v.DY)
	return d
}

// VelocityOf returns the vector for a direction.
func VelocityOf(d Direction) Velocity {
	dx, dy := d.Vector()
	return Velocity{DX: dx, DY: dy}
}

// Status is the engine's lifecycle state.
type Status int

const (
	StatusRunning Status = iota
	StatusOver
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusOver:
		return "over"
	default:
		return "unknown"
	}
}

// State is a read-only snapshot of the engine, safe to hand to renderers.
type State struct {
	Grid     int
	Snake    []Point // head first
	Food     Point
	Velocity Velocity // pending, read by the next tick
	Heading  Velocity // applied by the last tick
	Score    int
	Ticks    uint64
	Status   Status
}

// Head returns the first segment, or the zero Point for an empty snapshot.
func (s State) Head() Point {
	if len(s.Snake) == 0 {
		return Point{}
	}
	return s.Snake[0]
}

// Len returns the snake length.
func (s State) Len() int {
	return len(s.Snake)
}

// Over reports whether the game has ended.
func (s State) Over() bool {
	return s.Status == StatusOver
}

// Occupies reports whether any segment is at p.
func (s State) Occupies(p Point) bool {
	for _, seg := range s.Snake {
		if seg == p {
			return true
		}
	}
	return false
}
