package translate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouter_DefaultsToFast(t *testing.T) {
	router := NewRouter()

	assert.Equal(t, StateNotTried, router.State())
	assert.Equal(t, PathFast, router.Route("how many stations are active"))
	assert.Equal(t, StateFastAttempted, router.State())
}

func TestRouter_HeuristicEscalation(t *testing.T) {
	tests := []struct {
		name     string
		question string
		path     Path
	}{
		{"simple count", "how many days in 2010 was it 10c", PathFast},
		{"simple lookup", "max temperature at Champaign last July", PathFast},
		{"compare keyword", "compare rainfall between Peoria and Springfield", PathReasoning},
		{"across keyword", "average humidity across all stations", PathReasoning},
		{"correlate keyword", "correlate soil temperature with air temperature", PathReasoning},
		{"per station", "total precipitation per station in 2020", PathReasoning},
		{"two stations no keyword", "rainfall at Peoria and rainfall at Springfield", PathReasoning},
		{"very long question", strings.Repeat("what about the temperature ", 10), PathReasoning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := NewRouter()
			assert.Equal(t, tt.path, router.Route(tt.question))
		})
	}
}

func TestRouter_EscalateAfterFastFailure(t *testing.T) {
	router := NewRouter()

	assert.Equal(t, PathFast, router.Route("how many stations"))
	assert.True(t, router.Escalate())
	assert.Equal(t, StateEscalated, router.State())

	// Nothing further to escalate to
	assert.False(t, router.Escalate())
}

func TestRouter_EscalateRequiresFastAttempt(t *testing.T) {
	router := NewRouter()

	assert.False(t, router.Escalate(), "cannot escalate before routing")

	router.Route("compare rainfall across stations")
	assert.Equal(t, StateEscalated, router.State())
	assert.False(t, router.Escalate(), "already escalated by heuristic")
}

func TestRouter_RouteAfterEscalationStaysOnReasoning(t *testing.T) {
	router := NewRouter()
	router.Route("how many stations")
	router.Escalate()

	assert.Equal(t, PathReasoning, router.Route("how many stations"))
}
