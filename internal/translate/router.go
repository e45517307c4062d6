package translate

import (
	"strings"

	"github.com/drshika/warm-ai-agent/internal/stations"
)

// RouterState tracks where a turn is in the fast-then-reasoning fallback.
// Reasoning is only entered after fast has been tried and failed, or when
// the heuristic predicts the question needs it outright.
type RouterState string

const (
	StateNotTried      RouterState = "not_tried"
	StateFastAttempted RouterState = "fast_attempted"
	StateEscalated     RouterState = "escalated"
)

// complexityMarkers are question phrasings that predict multi-step
// decomposition: comparisons, cross-table reasoning, aggregation across
// joins.
var complexityMarkers = []string{
	"compare", "comparison", "across", "correlate", "correlation",
	"versus", " vs ", "difference between", "relative to",
	"for each", "per station", "breakdown", "broken down",
	"trend", "over time", "join",
}

// longQuestionThreshold is the length beyond which a question is routed
// to the reasoning path outright.
const longQuestionThreshold = 220

// Router chooses the translation path for one turn and owns the
// escalation state machine. A router lives exactly as long as its turn.
type Router struct {
	state RouterState
}

// NewRouter creates a router for a fresh turn
func NewRouter() *Router {
	return &Router{state: StateNotTried}
}

// State returns the current routing state
func (r *Router) State() RouterState {
	return r.state
}

// Route picks the initial path for a question. Defaults to fast;
// escalates immediately when the complexity heuristic fires.
func (r *Router) Route(question string) Path {
	if r.state != StateNotTried {
		return PathReasoning
	}

	if predictsComplexity(question) {
		r.state = StateEscalated
		return PathReasoning
	}

	r.state = StateFastAttempted

	return PathFast
}

// Escalate records that the fast attempt failed extraction or validation
// and moves the turn to the reasoning path. Returns false when there is
// nothing left to escalate to.
func (r *Router) Escalate() bool {
	if r.state != StateFastAttempted {
		return false
	}

	r.state = StateEscalated

	return true
}

// predictsComplexity is a lightweight heuristic on the raw question text
func predictsComplexity(question string) bool {
	if len(question) > longQuestionThreshold {
		return true
	}

	lower := strings.ToLower(question)

	for _, marker := range complexityMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}

	// Questions naming several stations usually need per-station breakdown
	_, mentioned := stations.Annotate(question)

	return len(mentioned) >= 2
}
