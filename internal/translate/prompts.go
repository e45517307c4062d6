package translate

import (
	"fmt"
	"strings"

	"github.com/drshika/warm-ai-agent/internal/schema"
	"github.com/drshika/warm-ai-agent/internal/stations"
)

// fastPromptTemplate produces exactly one statement in a single round trip
const fastPromptTemplate = `You are an expert at writing SQL for the WARM weather reporting database.
Convert the user's question into exactly one read-only SQL statement.

Mandatory rules:
1. Produce exactly one SELECT statement (WITH ... SELECT is allowed), inside a single ` + "```sql" + ` code fence.
2. Never use INSERT, UPDATE, DELETE, DROP, ALTER, TRUNCATE, MERGE, EXEC, CREATE, GRANT, or REVOKE.
3. Only reference tables and columns that exist in the schema below.
4. Before the code fence, explain in one or two plain sentences what the query does.
5. When Illinois locations are mentioned, filter by their station codes:
%s
6. Optionally, after the code fence, add at most two lines starting with "Follow-up:" suggesting related questions.

Database schema:
%s

Question: %s`

// reasoningPromptTemplate allows bounded exploratory probes before the
// final statement.
const reasoningPromptTemplate = `You are an expert at writing SQL for the WARM weather reporting database.
The question below may need decomposition. You may inspect the data before
committing to a final query.

Respond in exactly one of two ways:
- To explore first, reply with the single word PROBE on its own line,
  followed by one read-only SELECT statement in a ` + "```sql" + ` code fence
  (for example a DISTINCT value list or a small sample). Keep probes under %d rows.
- To answer, reply with one or two plain sentences explaining the query,
  then the final SELECT statement in a ` + "```sql" + ` code fence. Optionally add
  up to two lines starting with "Follow-up:".

Mandatory rules:
1. Only SELECT (or WITH ... SELECT) statements, for probes and for the final answer.
2. Never use INSERT, UPDATE, DELETE, DROP, ALTER, TRUNCATE, MERGE, EXEC, CREATE, GRANT, or REVOKE.
3. Only reference tables and columns that exist in the schema below.
4. When Illinois locations are mentioned, filter by their station codes:
%s

Database schema:
%s

Question: %s%s`

// buildFastPrompt renders the single-shot translation prompt
func buildFastPrompt(descriptor *schema.Descriptor, question string) string {
	return fmt.Sprintf(fastPromptTemplate,
		indent(stations.Mappings()),
		descriptor.Describe(),
		question)
}

// buildReasoningPrompt renders the multi-step prompt, folding prior probe
// results into the transcript section.
func buildReasoningPrompt(
	descriptor *schema.Descriptor,
	question string,
	transcript string,
	probeRowLimit int,
) string {
	transcriptSection := ""
	if transcript != "" {
		transcriptSection = "\n\nExploration so far:\n" + transcript
	}

	return fmt.Sprintf(reasoningPromptTemplate,
		probeRowLimit,
		indent(stations.Mappings()),
		descriptor.Describe(),
		question,
		transcriptSection)
}

func indent(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "   " + line
	}

	return strings.Join(lines, "\n")
}
