// Package session orchestrates question turns: routing, translation,
// extraction, safety validation, interactive verification, execution,
// and summarization. Every turn is isolated; no query state survives
// into the next one.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/drshika/warm-ai-agent/internal/errors"
	"github.com/drshika/warm-ai-agent/internal/executor"
	"github.com/drshika/warm-ai-agent/internal/logging"
	"github.com/drshika/warm-ai-agent/internal/safety"
	"github.com/drshika/warm-ai-agent/internal/summarize"
	"github.com/drshika/warm-ai-agent/internal/translate"
)

// Runner executes an approved statement and returns its rows
type Runner interface {
	Execute(ctx context.Context, statement string) (*executor.ResultSet, error)
}

// DeclinedMessage is shown when the user does not approve execution
const DeclinedMessage = "Query was not executed."

// Options wires a session's collaborators
type Options struct {
	Fast       translate.Translator
	Reasoning  translate.Translator
	Runner     Runner
	Summarizer *summarize.Summarizer
	Input      io.Reader
	Output     io.Writer
}

// Session drives the interactive question loop. Turns are strictly
// sequential; the session owns the streams and the verifier for its
// whole lifetime.
type Session struct {
	fast       translate.Translator
	reasoning  translate.Translator
	runner     Runner
	summarizer *summarize.Summarizer
	verifier   *Verifier
	in         *bufio.Reader
	out        io.Writer
}

// New creates a session from its wired collaborators. The session and
// its verifier share one buffered reader so neither consumes input
// meant for the other.
func New(opts Options) *Session {
	reader := bufio.NewReader(opts.Input)

	return &Session{
		fast:       opts.Fast,
		reasoning:  opts.Reasoning,
		runner:     opts.Runner,
		summarizer: opts.Summarizer,
		verifier:   NewVerifier(reader, opts.Output),
		in:         reader,
		out:        opts.Output,
	}
}

// Run accepts questions until the user quits. Turn-scoped failures are
// reported and the loop continues; anything else ends the session.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Ask questions about the WARM weather database. Type 'quit' to exit.")

	for {
		fmt.Fprint(s.out, "\nQuestion: ")

		line, err := s.in.ReadString('\n')
		if err != nil && line == "" {
			return nil
		}

		question := strings.TrimSpace(line)
		if question == "" {
			continue
		}

		if question == "quit" || question == "exit" {
			return nil
		}

		answer, err := s.RunTurn(ctx, question)
		if err != nil {
			if !errors.IsTurnScoped(err) {
				return err
			}

			fmt.Fprintf(s.out, "\nCould not answer that question: %v\n", err)
		} else {
			fmt.Fprintf(s.out, "\n%s\n", answer)
		}

		if !s.verifier.ConfirmContinue() {
			return nil
		}
	}
}

// RunTurn resolves one question end to end and returns the answer text.
// The router starts fresh each turn; a fast-path candidate that fails
// extraction or safety validation escalates to the reasoning translator
// once. A failed model call ends the turn without retrying.
func (s *Session) RunTurn(ctx context.Context, question string) (string, error) {
	turnID := uuid.New().String()
	logger := logging.WithFields(map[string]interface{}{
		"turn_id":  turnID,
		"question": question,
	})

	router := translate.NewRouter()
	path := router.Route(question)

	logger.Debugf("routing question via %s path", path)

	candidate, err := s.translateAndExtract(ctx, path, question)
	if err != nil && errors.IsType(err, errors.ErrTypeExtraction) && router.Escalate() {
		logger.WithError(err).Warn("fast path produced no query, escalating to reasoning translator")

		candidate, err = s.translateAndExtract(ctx, translate.PathReasoning, question)
	}

	if err != nil {
		return "", err
	}

	verdict := safety.Check(candidate.SQL)
	if !verdict.Approved && router.Escalate() {
		logger.Warnf("fast candidate rejected (%s), escalating to reasoning translator", verdict.Reason)

		candidate, err = s.translateAndExtract(ctx, translate.PathReasoning, question)
		if err != nil {
			return "", err
		}

		verdict = safety.Check(candidate.SQL)
	}

	if !verdict.Approved {
		logger.Warnf("candidate rejected: %s", verdict.Reason)
	}

	if !s.verifier.Confirm(candidate, verdict) {
		return DeclinedMessage, nil
	}

	result, err := s.runner.Execute(ctx, candidate.SQL)
	if err != nil {
		return "", err
	}

	logger.Debugf("query returned %d rows", len(result.Rows))

	return s.summarizer.Summarize(result), nil
}

// translateAndExtract runs the chosen translator and isolates the SQL
func (s *Session) translateAndExtract(ctx context.Context, path translate.Path, question string) (*translate.Candidate, error) {
	translator := s.fast
	if path == translate.PathReasoning {
		translator = s.reasoning
	}

	candidate, err := translator.Translate(ctx, question)
	if err != nil {
		return nil, err
	}

	if err := candidate.ExtractSQL(); err != nil {
		return nil, err
	}

	return candidate, nil
}
