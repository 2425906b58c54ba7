package snake

import (
	"errors"
	"math/rand"
	"testing"
)

func newTestEngine(t *testing.T, seed int64) *Engine {
	t.Helper()
	e, err := New(DefaultConfig(), rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return e
}

// setFood moves the food to a cell the test controls.
func setFood(e *Engine, p Point) {
	e.food = p
}

func TestRestartInitialState(t *testing.T) {
	e := newTestEngine(t, 1)
	st := e.State()

	want := []Point{{10, 10}, {9, 10}, {8, 10}}
	if len(st.Snake) != len(want) {
		t.Fatalf("snake length = %d, expected %d", len(st.Snake), len(want))
	}
	for i, p := range want {
		if st.Snake[i] != p {
			t.Errorf("segment %d = %v, expected %v", i, st.Snake[i], p)
		}
	}
	if st.Velocity != (Velocity{DX: 1}) {
		t.Errorf("velocity = %v, expected (1,0)", st.Velocity)
	}
	if st.Score != 0 || st.Status != StatusRunning {
		t.Errorf("score=%d status=%v, expected 0 running", st.Score, st.Status)
	}
	if st.Occupies(st.Food) {
		t.Errorf("food %v placed on snake", st.Food)
	}
}

func TestRestartIdempotent(t *testing.T) {
	e := newTestEngine(t, 2)
	e.Turn(DirDown)
	setFood(e, Point{0, 0})
	for _k := 0; _k < 3; _k++ {
		if _, err := e.Tick(); err != nil {
			t.Fatalf("Tick() failed: %v", err)
		}
	}

	a, err := e.Restart()
	if err != nil {
		t.Fatalf("Restart() failed: %v", err)
	}
	b, err := e.Restart()
	if err != nil {
		t.Fatalf("Restart() failed: %v", err)
	}

	if a.Len() != 3 || b.Len() != 3 {
		t.Fatalf("lengths = %d, %d, expected 3", a.Len(), b.Len())
	}
	for i := range a.Snake {
		if a.Snake[i] != b.Snake[i] {
			t.Errorf("segment %d differs: %v vs %v", i, a.Snake[i], b.Snake[i])
		}
	}
	if a.Velocity != b.Velocity || a.Score != b.Score || a.Status != b.Status || a.Ticks != b.Ticks {
		t.Errorf("restart states differ: %+v vs %+v", a, b)
	}
}

func TestTickMovesForward(t *testing.T) {
	e := newTestEngine(t, 3)
	setFood(e, Point{0, 0})

	st, err := e.Tick()
	if err != nil {
		t.Fatalf("Tick() failed: %v", err)
	}

	want := []Point{{11, 10}, {10, 10}, {9, 10}}
	for i, p := range want {
		if st.Snake[i] != p {
			t.Errorf("segment %d = %v, expected %v", i, st.Snake[i], p)
		}
	}
	if st.Len() != 3 {
		t.Errorf("length = %d, expected 3", st.Len())
	}
	if st.Ticks != 1 {
		t.Errorf("ticks = %d, expected 1", st.Ticks)
	}
}

func TestWallCollision(t *testing.T) {
	tests := []struct {
		name  string
		snake []Point
		dir   Direction
	}{
		{"right wall", []Point{{19, 10}, {18, 10}, {17, 10}}, DirRight},
		{"left wall", []Point{{0, 10}, {1, 10}, {2, 10}}, DirLeft},
		{"top wall", []Point{{5, 0}, {5, 1}, {5, 2}}, DirUp},
		{"bottom wall", []Point{{5, 19}, {5, 18}, {5, 17}}, DirDown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(t, 4)
			e.snake = append([]Point(nil), tc.snake...)
			e.velocity = VelocityOf(tc.dir)
			e.heading = e.velocity
			setFood(e, Point{10, 10})
			before := e.State()

			after, err := e.Tick()
			if err != nil {
				t.Fatalf("Tick() failed: %v", err)
			}
			if after.Status != StatusOver {
				t.Fatalf("status = %v, expected over", after.Status)
			}
			assertUnchanged(t, before, after)
		})
	}
}

func TestSelfCollision(t *testing.T) {
	e := newTestEngine(t, 5)
	// Head at (5,5) moving up into (5,4), which is body.
	e.snake = []Point{{5, 5}, {6, 5}, {6, 4}, {5, 4}, {4, 4}}
	e.velocity = Velocity{DY: -1}
	e.heading = Velocity{DX: -1}
	setFood(e, Point{0, 0})
	before := e.State()

	after, err := e.Tick()
	if err != nil {
		t.Fatalf("Tick() failed: %v", err)
	}
	if after.Status != StatusOver {
		t.Fatalf("status = %v, expected over", after.Status)
	}
	assertUnchanged(t, before, after)
}

func TestSelfCollisionIncludesTail(t *testing.T) {
	e := newTestEngine(t, 6)
	// A 2x2 loop: the head moves onto the current tail cell.
	e.snake = []Point{{5, 5}, {6, 5}, {6, 6}, {5, 6}}
	e.velocity = Velocity{DY: 1}
	e.heading = Velocity{DX: -1}
	setFood(e, Point{0, 0})

	st, err := e.Tick()
	if err != nil {
		t.Fatalf("Tick() failed: %v", err)
	}
	if st.Status != StatusOver {
		t.Errorf("moving onto the tail should end the game")
	}
}

func TestWallCheckedBeforeSelf(t *testing.T) {
	e := newTestEngine(t, 7)
	e.snake = []Point{{0, 0}, {1, 0}, {2, 0}}
	e.velocity = Velocity{DX: -1}
	e.heading = e.velocity

	st, _ := e.Tick()
	if st.Status != StatusOver || st.Head() != (Point{0, 0}) {
		t.Errorf("expected wall collision with head unchanged, got %+v", st)
	}
}

func TestEatFood(t *testing.T) {
	e := newTestEngine(t, 8)
	setFood(e, Point{11, 10})
	before := e.State()

	st, err := e.Tick()
	if err != nil {
		t.Fatalf("Tick() failed: %v", err)
	}
	if st.Score != before.Score+1 {
		t.Errorf("score = %d, expected %d", st.Score, before.Score+1)
	}
	if st.Len() != before.Len()+1 {
		t.Errorf("length = %d, expected %d", st.Len(), before.Len()+1)
	}
	if st.Snake[st.Len()-1] != before.Snake[before.Len()-1] {
		t.Errorf("tail moved while growing")
	}
	if st.Occupies(st.Food) {
		t.Errorf("new food %v placed on snake", st.Food)
	}
}

func TestLengthInvariant(t *testing.T) {
	e := newTestEngine(t, 9)
	dirs := []Direction{DirRight, DirDown, DirLeft, DirUp}
	for i := 0; i < 500; i++ {
		if i%7 == 0 {
			e.Turn(dirs[(i/7)%len(dirs)])
		}
		before := e.State()
		after, err := e.Tick()
		if err != nil {
			t.Fatalf("Tick() failed: %v", err)
		}
		if after.Over() {
			if _, err := e.Restart(); err != nil {
				t.Fatalf("Restart() failed: %v", err)
			}
			continue
		}
		grew := 0
		if after.Score > before.Score {
			grew = 1
		}
		if after.Len() != before.Len()+grew {
			t.Fatalf("tick %d: length %d -> %d with growth %d", i, before.Len(), after.Len(), grew)
		}
		if after.Occupies(after.Food) {
			t.Fatalf("tick %d: food on snake", i)
		}
	}
}

func TestReversalRejected(t *testing.T) {
	e := newTestEngine(t, 10)

	st := e.SetDirection(-1, 0)
	if st.Velocity != (Velocity{DX: 1}) {
		t.Errorf("velocity = %v, expected reversal to be ignored", st.Velocity)
	}
}

func TestReversalAgainstHeadingAcrossCalls(t *testing.T) {
	e := newTestEngine(t, 11)
	setFood(e, Point{0, 0})

	// Up then left between ticks: left reverses the applied heading.
	e.Turn(DirUp)
	st := e.Turn(DirLeft)
	if st.Velocity != VelocityOf(DirUp) {
		t.Errorf("velocity = %v, expected up", st.Velocity)
	}
	if st.Velocity == st.Heading.Neg() {
		t.Errorf("pending velocity reverses heading")
	}

	st, _ = e.Tick()
	if st.Heading != VelocityOf(DirUp) {
		t.Errorf("heading = %v, expected up", st.Heading)
	}

	// Now left is legal.
	st = e.Turn(DirLeft)
	if st.Velocity != VelocityOf(DirLeft) {
		t.Errorf("velocity = %v, expected left", st.Velocity)
	}
}

func TestLastDirectionWins(t *testing.T) {
	e := newTestEngine(t, 12)
	setFood(e, Point{0, 0})
	e.Turn(DirUp)
	e.Turn(DirDown)

	st, _ := e.Tick()
	if st.Head() != (Point{10, 11}) {
		t.Errorf("head = %v, expected (10,11)", st.Head())
	}
}

func TestInvalidDirectionIgnored(t *testing.T) {
	e := newTestEngine(t, 13)
	for _, v := range [][2]int{{0, 0}, {1, 1}, {2, 0}, {0, -3}, {-1, 1}} {
		st := e.SetDirection(v[0], v[1])
		if st.Velocity != (Velocity{DX: 1}) {
			t.Errorf("SetDirection(%d,%d) changed velocity to %v", v[0], v[1], st.Velocity)
		}
	}
}

func TestGameOverIsTerminal(t *testing.T) {
	e := newTestEngine(t, 14)
	e.snake = []Point{{19, 10}, {18, 10}, {17, 10}}
	st, _ := e.Tick()
	if !st.Over() {
		t.Fatal("expected game over")
	}

	st = e.Turn(DirUp)
	if st.Velocity != (Velocity{DX: 1}) {
		t.Errorf("direction changed after game over: %v", st.Velocity)
	}
	again, _ := e.Tick()
	assertUnchanged(t, st, again)

	st, err := e.Restart()
	if err != nil {
		t.Fatalf("Restart() failed: %v", err)
	}
	if st.Status != StatusRunning {
		t.Errorf("status after restart = %v", st.Status)
	}
}

func TestZeroEngineIgnoresEvents(t *testing.T) {
	var e Engine
	st := e.SetDirection(0, 1)
	if st.Len() != 0 {
		t.Errorf("zero engine produced a snake")
	}
	if _, err := e.Tick(); err != nil {
		t.Errorf("Tick() on zero engine returned %v", err)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	e := newTestEngine(t, 15)
	st := e.State()
	st.Snake[0] = Point{-5, -5}
	if e.State().Head() == (Point{-5, -5}) {
		t.Error("mutating a snapshot changed the engine")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() State {
		e := newTestEngine(t, 12345)
		var st State
		for i := 0; i < 200; i++ {
			switch i {
			case 3:
				e.Turn(DirDown)
			case 9:
				e.Turn(DirLeft)
			case 15:
				e.Turn(DirUp)
			}
			st, _ = e.Tick()
			if st.Over() {
				break
			}
		}
		return st
	}

	a, b := run(), run()
	if a.Score != b.Score || a.Ticks != b.Ticks || a.Food != b.Food || a.Head() != b.Head() {
		t.Errorf("runs diverged: %+v vs %+v", a, b)
	}
}

func TestNoFreeCell(t *testing.T) {
	e, err := New(Config{GridSize: 4, InitialLength: 3}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	// Fill the board with a snake snaking through every cell but one.
	e.snake = e.snake[:0]
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			e.snake = append(e.snake, Point{x, y})
		}
	}
	if err := e.placeFood(); !errors.Is(err, ErrNoFreeCell) {
		t.Errorf("placeFood() = %v, expected ErrNoFreeCell", err)
	}
}

func TestTickNoFreeCellEndsGame(t *testing.T) {
	e, err := New(Config{GridSize: 4, InitialLength: 3}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	// Every cell but (3,3) is snake; the head sits above it facing down.
	e.snake = []Point{{X: 3, Y: 2}}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			p := Point{X: x, Y: y}
			if p == (Point{X: 3, Y: 3}) || p == (Point{X: 3, Y: 2}) {
				continue
			}
			e.snake = append(e.snake, p)
		}
	}
	e.velocity = Velocity{DY: 1}
	e.heading = e.velocity
	setFood(e, Point{X: 3, Y: 3})

	st, err := e.Tick()
	if !errors.Is(err, ErrNoFreeCell) {
		t.Fatalf("Tick() error = %v, expected ErrNoFreeCell", err)
	}
	if !st.Over() {
		t.Error("a failed food placement must end the game")
	}

	again, err := e.Tick()
	if err != nil {
		t.Errorf("Tick() after fatal error = %v, expected nil", err)
	}
	if again.Ticks != st.Ticks || again.Len() != st.Len() {
		t.Error("Tick() after fatal error changed state")
	}
	if got := e.SetDirection(-1, 0); got.Velocity != st.Velocity {
		t.Error("SetDirection() after fatal error changed velocity")
	}
}

func TestRestartNoFreeCellEndsGame(t *testing.T) {
	e := newTestEngine(t, 1)
	e.cfg.PlacementAttempts = 0 // no draws at all

	st, err := e.Restart()
	if !errors.Is(err, ErrNoFreeCell) {
		t.Fatalf("Restart() error = %v, expected ErrNoFreeCell", err)
	}
	if !st.Over() {
		t.Error("Restart() without food must leave the game over")
	}
}

func TestPlacementAttemptsBounded(t *testing.T) {
	e, err := New(Config{GridSize: 4, InitialLength: 3, PlacementAttempts: 1}, rand.New(rand.NewSource(1)))
	if err != nil {
		// A single attempt may already miss at start; that is the bounded failure.
		if !errors.Is(err, ErrNoFreeCell) {
			t.Fatalf("New() = %v", err)
		}
		return
	}
	// 15 of 16 cells occupied: one draw rarely hits the free one.
	e.snake = e.snake[:0]
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if x == 3 && y == 3 {
				continue
			}
			e.snake = append(e.snake, Point{x, y})
		}
	}
	for _k := 0; _k < 50; _k++ {
		err := e.placeFood()
		if err == nil {
			if e.food != (Point{3, 3}) {
				t.Fatalf("food placed at %v", e.food)
			}
			continue
		}
		if !errors.Is(err, ErrNoFreeCell) {
			t.Fatalf("unexpected error %v", err)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"default", DefaultConfig(), true},
		{"short snake", Config{GridSize: 20, InitialLength: 2}, false},
		{"tiny grid", Config{GridSize: 3, InitialLength: 3}, false},
		{"zero grid", Config{GridSize: 0, InitialLength: 3}, false},
		{"small but valid", Config{GridSize: 4, InitialLength: 3}, true},
		{"negative attempts", Config{GridSize: 20, InitialLength: 3, PlacementAttempts: -1}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func assertUnchanged(t *testing.T, before, after State) {
	t.Helper()
	if before.Len() != after.Len() {
		t.Fatalf("length changed %d -> %d", before.Len(), after.Len())
	}
	for i := range before.Snake {
		if before.Snake[i] != after.Snake[i] {
			t.Errorf("segment %d changed %v -> %v", i, before.Snake[i], after.Snake[i])
		}
	}
	if before.Food != after.Food {
		t.Errorf("food changed %v -> %v", before.Food, after.Food)
	}
	if before.Score != after.Score {
		t.Errorf("score changed %d -> %d", before.Score, after.Score)
	}
}

func TestReseedReproducesNewGame(t *testing.T) {
	fresh, err := New(DefaultConfig(), rand.New(rand.NewSource(77)))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	e := newTestEngine(t, 1)
	for _k := 0; _k < 5; _k++ {
		e.Tick()
	}
	e.Reseed(77)
	st, err := e.Restart()
	if err != nil {
		t.Fatalf("Restart() failed: %v", err)
	}
	if st.Food != fresh.State().Food {
		t.Errorf("food = %v, expected %v from a fresh engine with the same seed", st.Food, fresh.State().Food)
	}
}
