package session

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/drshika/warm-ai-agent/internal/errors"
	"github.com/drshika/warm-ai-agent/internal/executor"
	"github.com/drshika/warm-ai-agent/internal/summarize"
	"github.com/drshika/warm-ai-agent/internal/translate"
)

type MockTranslator struct {
	mock.Mock
}

func (m *MockTranslator) Translate(ctx context.Context, question string) (*translate.Candidate, error) {
	args := m.Called(ctx, question)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*translate.Candidate), args.Error(1)
}

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Execute(ctx context.Context, statement string) (*executor.ResultSet, error) {
	args := m.Called(ctx, statement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*executor.ResultSet), args.Error(1)
}

func candidateWithSQL(question, sql string) *translate.Candidate {
	return &translate.Candidate{
		Question:     question,
		RawModelText: "Counting days at that temperature.\n```sql\n" + sql + "\n```",
		Rationale:    "Counting days at that temperature.",
		Path:         translate.PathFast,
	}
}

func newTestSession(fast, reasoning translate.Translator, runner Runner, input string) (*Session, *strings.Builder) {
	out := &strings.Builder{}

	return New(Options{
		Fast:       fast,
		Reasoning:  reasoning,
		Runner:     runner,
		Summarizer: summarize.New(100),
		Input:      strings.NewReader(input),
		Output:     out,
	}), out
}

func TestRunTurn_ApprovedAndConfirmed(t *testing.T) {
	fast := &MockTranslator{}
	runner := &MockRunner{}

	question := "how many days in 2010 was it 10c"
	sql := "SELECT COUNT(DISTINCT CAST(measurement_timestamp AS DATE)) AS DaysAt10C FROM warm_icn_data WHERE avg_air_temp = 10"

	fast.On("Translate", mock.Anything, question).Return(candidateWithSQL(question, sql), nil)
	runner.On("Execute", mock.Anything, sql).Return(&executor.ResultSet{
		Columns: []string{"DaysAt10C"},
		Rows:    []executor.Row{{"DaysAt10C": "3"}},
	}, nil)

	sess, out := newTestSession(fast, &MockTranslator{}, runner, "y\n")

	answer, err := sess.RunTurn(context.Background(), question)
	require.NoError(t, err)

	assert.Equal(t, "DaysAt10C: 3", answer)
	assert.Contains(t, out.String(), "Execute this query?")
	assert.Contains(t, out.String(), sql)
	runner.AssertExpectations(t)
}

func TestRunTurn_DeclineNeverExecutes(t *testing.T) {
	fast := &MockTranslator{}
	runner := &MockRunner{}

	question := "list all stations"
	fast.On("Translate", mock.Anything, question).
		Return(candidateWithSQL(question, "SELECT station, location FROM stations"), nil)

	sess, _ := newTestSession(fast, &MockTranslator{}, runner, "n\n")

	answer, err := sess.RunTurn(context.Background(), question)
	require.NoError(t, err)

	assert.Equal(t, DeclinedMessage, answer)
	runner.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestRunTurn_NonAffirmativeInputDeclines(t *testing.T) {
	fast := &MockTranslator{}
	runner := &MockRunner{}

	question := "list all stations"
	fast.On("Translate", mock.Anything, question).
		Return(candidateWithSQL(question, "SELECT station FROM stations"), nil)

	sess, _ := newTestSession(fast, &MockTranslator{}, runner, "sure why not\n")

	answer, err := sess.RunTurn(context.Background(), question)
	require.NoError(t, err)

	assert.Equal(t, DeclinedMessage, answer)
	runner.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestRunTurn_RejectedCandidateNeverPrompts(t *testing.T) {
	fast := &MockTranslator{}
	reasoning := &MockTranslator{}
	runner := &MockRunner{}

	question := "clear out old readings"
	unsafe := "DELETE FROM warm_icn_data WHERE avg_air_temp IS NULL"
	fast.On("Translate", mock.Anything, question).Return(candidateWithSQL(question, unsafe), nil)
	reasoning.On("Translate", mock.Anything, question).Return(candidateWithSQL(question, unsafe), nil)

	sess, out := newTestSession(fast, reasoning, runner, "y\n")

	answer, err := sess.RunTurn(context.Background(), question)
	require.NoError(t, err)

	assert.Equal(t, DeclinedMessage, answer)
	assert.Contains(t, out.String(), "Query rejected:")
	assert.NotContains(t, out.String(), "Execute this query?")
	reasoning.AssertNumberOfCalls(t, "Translate", 1)
	runner.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestRunTurn_RejectedFastCandidateEscalates(t *testing.T) {
	fast := &MockTranslator{}
	reasoning := &MockTranslator{}
	runner := &MockRunner{}

	question := "remove null readings"
	fast.On("Translate", mock.Anything, question).
		Return(candidateWithSQL(question, "DELETE FROM warm_icn_data WHERE avg_air_temp IS NULL"), nil)

	sql := "SELECT COUNT(*) AS null_readings FROM warm_icn_data WHERE avg_air_temp IS NULL"
	reasoning.On("Translate", mock.Anything, question).Return(candidateWithSQL(question, sql), nil)
	runner.On("Execute", mock.Anything, sql).Return(&executor.ResultSet{
		Columns: []string{"null_readings"},
		Rows:    []executor.Row{{"null_readings": int64(12)}},
	}, nil)

	sess, out := newTestSession(fast, reasoning, runner, "y\n")

	answer, err := sess.RunTurn(context.Background(), question)
	require.NoError(t, err)

	assert.Contains(t, answer, "12")
	assert.Contains(t, out.String(), "Execute this query?")
	fast.AssertNumberOfCalls(t, "Translate", 1)
	reasoning.AssertNumberOfCalls(t, "Translate", 1)
	runner.AssertExpectations(t)
}

func TestRunTurn_ExtractionFailureEscalates(t *testing.T) {
	fast := &MockTranslator{}
	reasoning := &MockTranslator{}
	runner := &MockRunner{}

	question := "what was the temperature"
	fast.On("Translate", mock.Anything, question).Return(&translate.Candidate{
		Question:     question,
		RawModelText: "I am not sure which station you mean.",
		Path:         translate.PathFast,
	}, nil)

	sql := "SELECT AVG(avg_air_temp) FROM warm_icn_data"
	reasoning.On("Translate", mock.Anything, question).
		Return(candidateWithSQL(question, sql), nil)
	runner.On("Execute", mock.Anything, sql).Return(&executor.ResultSet{
		Columns: []string{"avg"},
		Rows:    []executor.Row{{"avg": 12.5}},
	}, nil)

	sess, _ := newTestSession(fast, reasoning, runner, "y\n")

	answer, err := sess.RunTurn(context.Background(), question)
	require.NoError(t, err)

	assert.Contains(t, answer, "12.5")
	fast.AssertNumberOfCalls(t, "Translate", 1)
	reasoning.AssertNumberOfCalls(t, "Translate", 1)
}

func TestRunTurn_BothPathsFailEndsTurn(t *testing.T) {
	fast := &MockTranslator{}
	reasoning := &MockTranslator{}
	runner := &MockRunner{}

	question := "tell me a story"
	noSQL := &translate.Candidate{Question: question, RawModelText: "Once upon a time there was a weather station."}

	fast.On("Translate", mock.Anything, question).Return(noSQL, nil)
	reasoning.On("Translate", mock.Anything, question).Return(noSQL, nil)

	sess, _ := newTestSession(fast, reasoning, runner, "y\n")

	_, err := sess.RunTurn(context.Background(), question)
	require.Error(t, err)

	assert.True(t, errors.IsType(err, errors.ErrTypeExtraction))
	runner.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestRunTurn_ModelFailureDoesNotRetry(t *testing.T) {
	fast := &MockTranslator{}
	reasoning := &MockTranslator{}
	runner := &MockRunner{}

	question := "average temperature in Champaign"
	fast.On("Translate", mock.Anything, question).
		Return(nil, errors.New(errors.ErrTypeTranslation, "model invocation failed"))

	sess, _ := newTestSession(fast, reasoning, runner, "y\n")

	_, err := sess.RunTurn(context.Background(), question)
	require.Error(t, err)

	assert.True(t, errors.IsType(err, errors.ErrTypeTranslation))
	reasoning.AssertNotCalled(t, "Translate", mock.Anything, mock.Anything)
	runner.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestRunTurn_ExecutionErrorPropagates(t *testing.T) {
	fast := &MockTranslator{}
	runner := &MockRunner{}

	question := "list stations"
	sql := "SELECT station FROM stations"
	fast.On("Translate", mock.Anything, question).Return(candidateWithSQL(question, sql), nil)
	runner.On("Execute", mock.Anything, sql).
		Return(nil, errors.New(errors.ErrTypeExecution, "query execution failed"))

	sess, _ := newTestSession(fast, &MockTranslator{}, runner, "y\n")

	_, err := sess.RunTurn(context.Background(), question)
	require.Error(t, err)

	assert.True(t, errors.IsType(err, errors.ErrTypeExecution))
	assert.True(t, errors.IsTurnScoped(err))
}

func TestRun_TurnScopedErrorContinuesLoop(t *testing.T) {
	fast := &MockTranslator{}
	runner := &MockRunner{}

	fast.On("Translate", mock.Anything, "first question").
		Return(nil, errors.New(errors.ErrTypeTranslation, "model invocation failed"))

	sql := "SELECT station FROM stations"
	fast.On("Translate", mock.Anything, "second question").
		Return(candidateWithSQL("second question", sql), nil)
	runner.On("Execute", mock.Anything, sql).Return(&executor.ResultSet{
		Columns: []string{"station"},
		Rows:    []executor.Row{{"station": "CMI"}},
	}, nil)

	input := "first question\ny\nsecond question\ny\nn\n"
	sess, out := newTestSession(fast, &MockTranslator{}, runner, input)

	err := sess.Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Could not answer that question:")
	assert.Contains(t, out.String(), "station: CMI")
}

func TestRun_QuitEndsLoop(t *testing.T) {
	fast := &MockTranslator{}
	runner := &MockRunner{}

	sess, _ := newTestSession(fast, &MockTranslator{}, runner, "quit\n")

	err := sess.Run(context.Background())
	require.NoError(t, err)

	fast.AssertNotCalled(t, "Translate", mock.Anything, mock.Anything)
	runner.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
