package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/drshika/warm-ai-agent/internal/errors"
	"github.com/drshika/warm-ai-agent/internal/extract"
	"github.com/drshika/warm-ai-agent/internal/llm"
	"github.com/drshika/warm-ai-agent/internal/safety"
	"github.com/drshika/warm-ai-agent/internal/schema"
	"github.com/drshika/warm-ai-agent/internal/stations"
)

// ReasoningTranslator may issue bounded exploratory probes against the
// database before settling on a final candidate. Probes pass through the
// same safety validation as the final statement.
type ReasoningTranslator struct {
	llmService    llm.Service
	schema        *schema.Descriptor
	prober        Prober
	maxSteps      int
	probeRowLimit int
}

// NewReasoningTranslator creates the multi-step translation strategy.
// maxSteps bounds the total number of model round trips, probes included.
func NewReasoningTranslator(
	llmService llm.Service,
	descriptor *schema.Descriptor,
	prober Prober,
	maxSteps int,
	probeRowLimit int,
) *ReasoningTranslator {
	return &ReasoningTranslator{
		llmService:    llmService,
		schema:        descriptor,
		prober:        prober,
		maxSteps:      maxSteps,
		probeRowLimit: probeRowLimit,
	}
}

// Translate runs the reasoning loop until the model commits to a final
// statement or the step budget runs out.
func (t *ReasoningTranslator) Translate(ctx context.Context, question string) (*Candidate, error) {
	annotated, _ := stations.Annotate(question)

	var transcript strings.Builder

	for step := 1; step <= t.maxSteps; step++ {
		prompt := buildReasoningPrompt(t.schema, annotated, transcript.String(), t.probeRowLimit)

		raw, err := t.llmService.Complete(ctx, prompt)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrTypeTranslation, "model invocation failed")
		}

		if !isProbe(raw) {
			return newCandidate(question, raw, PathReasoning), nil
		}

		t.runProbe(ctx, raw, step, &transcript)
	}

	return nil, errors.New(errors.ErrTypeTranslation, "exceeded reasoning budget")
}

// runProbe extracts, validates, and executes one exploratory query,
// recording the outcome in the transcript. Failures are fed back to the
// model rather than ending the turn; they still consume a step.
func (t *ReasoningTranslator) runProbe(
	ctx context.Context,
	raw string,
	step int,
	transcript *strings.Builder,
) {
	statement, err := extract.Statement(raw)
	if err != nil {
		fmt.Fprintf(transcript, "Probe %d: no query could be identified in your response.\n", step)
		return
	}

	if verdict := safety.Check(statement); !verdict.Approved {
		fmt.Fprintf(transcript, "Probe %d (%s) was rejected: %s\n", step, statement, verdict.Reason)
		return
	}

	result, err := t.prober.Probe(ctx, statement)
	if err != nil {
		fmt.Fprintf(transcript, "Probe %d (%s) failed: %v\n", step, statement, err)
		return
	}

	fmt.Fprintf(transcript, "Probe %d (%s) returned:\n%s\n", step, statement, result)
}

// isProbe reports whether the model asked for an exploratory step
func isProbe(raw string) bool {
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		upper := strings.ToUpper(strings.TrimSuffix(trimmed, ":"))

		return upper == "PROBE"
	}

	return false
}
