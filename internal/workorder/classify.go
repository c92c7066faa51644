package workorder

import (
	"strings"

	"rectiflex-backend/internal/model"
)

// Keyword phrases that mark a maintenance log as urgent.
var urgentPhrases = []string{"urgent", "immediate attention"}

// Classify returns the priority for a free-text maintenance description.
// The match is a case-insensitive substring search with no tokenization or
// negation handling, so "not urgent" still classifies as urgent. This quirk
// is long-standing observed behavior and is kept deliberately.
func Classify(text string) string {
	lower := strings.ToLower(text)
	for _, phrase := range urgentPhrases {
		if strings.Contains(lower, phrase) {
			return model.PriorityUrgent
		}
	}
	return model.PriorityNormal
}
