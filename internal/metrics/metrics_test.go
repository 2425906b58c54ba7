package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusCounters(t *testing.T) {
	p := NewPrometheus()

	p.SessionStarted()
	p.SessionStarted()
	p.SessionEnded()
	p.GameStarted()
	p.FoodEaten()
	p.FoodEaten()
	p.GameOver(2)

	assert.Equal(t, 1.0, testutil.ToFloat64(p.sessions))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.gamesStarted))
	assert.Equal(t, 2.0, testutil.ToFloat64(p.foodEaten))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.gamesOver))
}

func TestPrometheusHandler(t *testing.T) {
	p := NewPrometheus()
	p.GameOver(7)

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "snake_final_score_count 1"), body)
	assert.True(t, strings.Contains(body, "snake_games_over_total 1"), body)
}

func TestNopSatisfiesSink(t *testing.T) {
	var s Sink = Nop{}
	s.GameOver(3)
}
