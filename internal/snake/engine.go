// Package snake implements the Snake game engine: grid movement, collision
// detection, food placement and reversal-safe direction input.
//
// The engine has no notion of time, terminals or storage. A host drives it
// by calling Tick at a fixed interval and SetDirection from input events,
// then renders the returned State.
package snake

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Default engine parameters.
const (
	DefaultGridSize      = 20
	DefaultInitialLength = 3
	MinInitialLength     = 3
)

var (
	// ErrInvalidConfig is returned by New for unusable grid settings.
	ErrInvalidConfig = errors.New("snake: invalid config")

	// ErrNoFreeCell means food could not be placed. The board is exhausted
	// and the game cannot continue.
	ErrNoFreeCell = errors.New("snake: no free cell for food")
)

// Config holds the engine parameters.
type Config struct {
	GridSize      int // N, the board is N x N
	InitialLength int // segments at (re)start

	// PlacementAttempts bounds reject-and-resample for food.
	// Zero means 16 * GridSize^2.
	PlacementAttempts int
}

// DefaultConfig returns the classic 20x20 board with a 3-segment snake.
func DefaultConfig() Config {
	return Config{
		GridSize:      DefaultGridSize,
		InitialLength: DefaultInitialLength,
	}
}

// Validate checks the config for a playable board.
func (c Config) Validate() error {
	if c.InitialLength < MinInitialLength {
		return fmt.Errorf("%w: initial length %d < %d", ErrInvalidConfig, c.InitialLength, MinInitialLength)
	}
	// The snake starts centred with its tail at N/2 - (L-1), which must stay on the grid,
	// and at least one cell must remain for food.
	if c.GridSize/2-(c.InitialLength-1) < 0 || c.GridSize*c.GridSize <= c.InitialLength {
		return fmt.Errorf("%w: grid %d too small for length %d", ErrInvalidConfig, c.GridSize, c.InitialLength)
	}
	if c.PlacementAttempts < 0 {
		return fmt.Errorf("%w: negative placement attempts", ErrInvalidConfig)
	}
	return nil
}

// Engine holds the complete game state. It is not safe for concurrent use;
// hosts call it from a single event loop.
type Engine struct {
	cfg      Config
	rng      *rand.Rand
	snake    []Point // head at index 0
	velocity Velocity
	heading  Velocity
	food     Point
	score    int
	ticks    uint64
	status   Status
}

// New creates an engine and starts the first game.
// A nil rng is replaced by a time-seeded source.
func New(cfg Config, rng *rand.Rand) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.PlacementAttempts == 0 {
		cfg.PlacementAttempts = 16 * cfg.GridSize * cfg.GridSize
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e := &Engine{cfg: cfg, rng: rng}
	if _, err := e.Restart(); err != nil {
		return nil, err
	}
	return e, nil
}

// Config returns the engine parameters.
func (e *Engine) Config() Config {
	return e.cfg
}

// Reseed replaces the random source with one seeded by seed. Calling it
// before Restart makes the next game reproducible from the seed alone.
func (e *Engine) Reseed(seed int64) {
	e.rng = rand.New(rand.NewSource(seed))
}

// Restart resets snake, velocity, score and food, and sets the status to running.
// Valid from any status.
func (e *Engine) Restart() (State, error) {
	cx, cy := e.cfg.GridSize/2, e.cfg.GridSize/2

	e.snake = make([]Point, 0, e.cfg.InitialLength)
	for i := 0; i < e.cfg.InitialLength; i++ {
		e.snake = append(e.snake, Point{X: cx - i, Y: cy})
	}
	e.velocity = Velocity{DX: 1}
	e.heading = e.velocity
	e.score = 0
	e.ticks = 0
	e.status = StatusRunning

	if err := e.placeFood(); err != nil {
		e.status = StatusOver
		return e.State(), err
	}
	return e.State(), nil
}

// SetDirection queues a new velocity for the next tick.
//
// Non-unit vectors, reversals of the current heading and calls made after
// game over are ignored. Among several calls between two ticks the last
// accepted one wins.
func (e *Engine) SetDirection(dx, dy int) State {
	if e.status == StatusOver || len(e.snake) == 0 {
		return e.State()
	}

	v := Velocity{DX: dx, DY: dy}
	if !v.IsUnit() || v == e.heading.Neg() {
		return e.State()
	}
	e.velocity = v
	return e.State()
}

// Turn is SetDirection for a Direction value.
func (e *Engine) Turn(d Direction) State {
	dx, dy := d.Vector()
	return e.SetDirection(dx, dy)
}

// Tick advances the game by one cell. It is a no-op once the game is over.
// The only error is ErrNoFreeCell, which the host must treat as fatal; the
// engine is over from then on.
func (e *Engine) Tick() (State, error) {
	if e.status == StatusOver || len(e.snake) == 0 {
		return e.State(), nil
	}

	next := e.snake[0].Add(e.velocity)

	if !e.inBounds(next) || e.occupied(next) {
		e.status = StatusOver
		return e.State(), nil
	}

	e.heading = e.velocity
	e.snake = append(e.snake, Point{})
	copy(e.snake[1:], e.snake)
	e.snake[0] = next
	e.ticks++

	if next == e.food {
		e.score++
		if err := e.placeFood(); err != nil {
			e.status = StatusOver
			return e.State(), err
		}
	} else {
		e.snake = e.snake[:len(e.snake)-1]
	}

	return e.State(), nil
}

// State returns a snapshot. The snake slice is copied.
func (e *Engine) State() State {
	return State{
		Grid:     e.cfg.GridSize,
		Snake:    append([]Point(nil), e.snake...),
		Food:     e.food,
		Velocity: e.velocity,
		Heading:  e.heading,
		Score:    e.score,
		Ticks:    e.ticks,
		Status:   e.status,
	}
}

func (e *Engine) inBounds(p Point) bool {
	return p.X >= 0 && p.X < e.cfg.GridSize && p.Y >= 0 && p.Y < e.cfg.GridSize
}

// occupied reports whether any current segment, tail included, is at p.
func (e *Engine) occupied(p Point) bool {
	for _, seg := range e.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// placeFood picks a random free cell by reject-and-resample.
func (e *Engine) placeFood() error {
	n := e.cfg.GridSize
	if len(e.snake) >= n*n {
		return fmt.Errorf("%w: grid %dx%d fully occupied", ErrNoFreeCell, n, n)
	}

	for i := 0; i < e.cfg.PlacementAttempts; i++ {
		p := Point{X: e.rng.Intn(n), Y: e.rng.Intn(n)}
		if !e.occupied(p) {
			e.food = p
			return nil
		}
	}
	return fmt.Errorf("%w: %d attempts on grid %dx%d with snake length %d",
		ErrNoFreeCell, e.cfg.PlacementAttempts, n, n, len(e.snake))
}
