package chatflow

import (
	"fmt"
	"strings"

	"github.com/smartserve/driftguard-assistant/internal/domain"
)

const narrationPrefix = "I'll help you with that. Let me check the current DriftGuard status:\n\n"

// narrationText renders tool results into the assistant-authored turn that
// the model sees before producing its final reply. Blocks keep the executor's
// order so the model can match them to its own requests.
func narrationText(results []domain.ToolResult) string {
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		if reason, failed := r.Failure(); failed {
			blocks = append(blocks, fmt.Sprintf("**%s Error:** %s", r.Tool(), reason))
			continue
		}
		output, _ := r.Output()
		blocks = append(blocks, fmt.Sprintf("**%s Result:**\n%s", r.Tool(), output))
	}
	return narrationPrefix + strings.Join(blocks, "\n\n")
}
