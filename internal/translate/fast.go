package translate

import (
	"context"

	"github.com/drshika/warm-ai-agent/internal/errors"
	"github.com/drshika/warm-ai-agent/internal/llm"
	"github.com/drshika/warm-ai-agent/internal/schema"
	"github.com/drshika/warm-ai-agent/internal/stations"
)

// FastTranslator produces a candidate in a single model round trip.
// No intermediate database access; retries belong to the transport layer.
type FastTranslator struct {
	llmService llm.Service
	schema     *schema.Descriptor
}

// NewFastTranslator creates the single-shot translation strategy
func NewFastTranslator(llmService llm.Service, descriptor *schema.Descriptor) *FastTranslator {
	return &FastTranslator{
		llmService: llmService,
		schema:     descriptor,
	}
}

// Translate converts a question into a candidate with one model call
func (t *FastTranslator) Translate(ctx context.Context, question string) (*Candidate, error) {
	annotated, _ := stations.Annotate(question)

	prompt := buildFastPrompt(t.schema, annotated)

	raw, err := t.llmService.Complete(ctx, prompt)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeTranslation, "model invocation failed")
	}

	return newCandidate(question, raw, PathFast), nil
}
