package recommend

import "strings"

// clarifyingPhrases are openings the model produces when it asks for more
// input instead of answering. Matching prose is inherently fragile, so this
// stays a best-effort gate kept behind one predicate; extend the list here,
// not in the retry loop.
var clarifyingPhrases = []string{
	"could you clarify",
	"could you please clarify",
	"can you clarify",
	"could you provide more",
	"could you tell me more",
	"can you provide more",
	"i need more information",
	"i need a bit more information",
	"to provide personalized recommendations",
	"to give you the best recommendations",
	"before i can provide",
	"what specific",
	"which specific",
	"it would help to know",
	"happy to help once",
}

// minAnswerLength guards against degenerate one-liner replies. Real
// recommendations run hundreds of words; anything shorter than this is not
// worth showing.
const minAnswerLength = 80

// IsNonAnswer reports whether generated text looks like a clarifying
// question or an otherwise degenerate reply rather than a recommendation.
func IsNonAnswer(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < minAnswerLength {
		return true
	}

	lower := strings.ToLower(trimmed)
	for _, phrase := range clarifyingPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}

	// A reply that is a single question is a non-answer even when long.
	if strings.HasSuffix(trimmed, "?") && strings.Count(trimmed, "\n") == 0 {
		return true
	}
	return false
}
