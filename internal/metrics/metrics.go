// Package metrics exposes game counters for the SSH server.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Sink receives game lifecycle events. The local game uses Nop.
type Sink interface {
	SessionStarted()
	SessionEnded()
	GameStarted()
	FoodEaten()
	GameOver(score int)
}

// Nop discards everything.
type Nop struct{}

func (Nop) SessionStarted() {}
func (Nop) SessionEnded()   {}
func (Nop) GameStarted()    {}
func (Nop) FoodEaten()      {}
func (Nop) GameOver(int)    {}

// Prometheus implements Sink with a private registry.
type Prometheus struct {
	registry     *prometheus.Registry
	sessions     prometheus.Gauge
	gamesStarted prometheus.Counter
	gamesOver    prometheus.Counter
	foodEaten    prometheus.Counter
	finalScore   prometheus.Histogram
}

// NewPrometheus registers the snake collectors on a fresh registry.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "snake_sessions_active",
			Help: "Connected SSH sessions.",
		}),
		gamesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snake_games_started_total",
			Help: "Games started, restarts included.",
		}),
		gamesOver: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snake_games_over_total",
			Help: "Games ended by a collision.",
		}),
		foodEaten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snake_food_eaten_total",
			Help: "Food consumed across all games.",
		}),
		finalScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "snake_final_score",
			Help:    "Score at game over.",
			Buckets: prometheus.LinearBuckets(0, 5, 12),
		}),
	}
	p.registry.MustRegister(p.sessions, p.gamesStarted, p.gamesOver, p.foodEaten, p.finalScore)
	return p
}

func (p *Prometheus) SessionStarted() { p.sessions.Inc() }
func (p *Prometheus) SessionEnded()   { p.sessions.Dec() }
func (p *Prometheus) GameStarted()    { p.gamesStarted.Inc() }
func (p *Prometheus) FoodEaten()      { p.foodEaten.Inc() }

func (p *Prometheus) GameOver(score int) {
	p.gamesOver.Inc()
	p.finalScore.Observe(float64(score))
}

// Registry returns the underlying registry, for tests and custom handlers.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the Prometheus text format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Serve serves /metrics on addr until ctx is cancelled.
func (p *Prometheus) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", p.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		//nolint:errcheck // Best-effort shutdown
		srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
