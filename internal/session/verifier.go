package session

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/drshika/warm-ai-agent/internal/safety"
	"github.com/drshika/warm-ai-agent/internal/translate"
)

// Verifier presents a candidate to the user and collects the execution
// decision. A rejected verdict ends the turn without ever offering
// execution; anything other than an explicit yes counts as a decline.
type Verifier struct {
	in  *bufio.Reader
	out io.Writer
}

// NewVerifier creates a verifier over the given streams
func NewVerifier(in io.Reader, out io.Writer) *Verifier {
	return &Verifier{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm renders the candidate and its verdict and returns whether the
// user approved execution. When the verdict is Rejected the reason is
// shown and no confirmation prompt is issued.
func (v *Verifier) Confirm(candidate *translate.Candidate, verdict safety.Verdict) bool {
	if !verdict.Approved {
		fmt.Fprintf(v.out, "\nQuery rejected: %s\n", verdict.Reason)
		return false
	}

	if candidate.Rationale != "" {
		fmt.Fprintf(v.out, "\n%s\n", candidate.Rationale)
	}

	fmt.Fprintf(v.out, "\nProposed query:\n\n%s\n", candidate.SQL)

	if len(candidate.SuggestedActions) > 0 {
		fmt.Fprintln(v.out, "\nSuggested follow-ups:")

		for _, suggestion := range candidate.SuggestedActions {
			fmt.Fprintf(v.out, "  - %s\n", suggestion)
		}
	}

	fmt.Fprint(v.out, "\nExecute this query? [y/N]: ")

	return v.readAffirmative()
}

// ConfirmContinue asks whether to accept another question
func (v *Verifier) ConfirmContinue() bool {
	fmt.Fprint(v.out, "\nAsk another question? [y/N]: ")
	return v.readAffirmative()
}

func (v *Verifier) readAffirmative() bool {
	line, err := v.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))

	return answer == "y" || answer == "yes"
}
