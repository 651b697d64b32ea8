package recommend

import (
	"strings"
	"testing"
)

func TestIsNonAnswer(t *testing.T) {
	realRec := "**Overview**\n\nAs a Solutions Engineer, your biggest opportunity is delegating first-draft technical documentation to AI. " +
		strings.Repeat("Use the assistant for proposal drafts and verify every claim. ", 4)

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", true},
		{"whitespace", "   \n\t  ", true},
		{"too short", "Try using AI more.", true},
		{"clarifying question", "Could you clarify what tools you currently have access to, and which team you work on? That would help me tailor the advice to your actual workflows.", true},
		{"needs more info", "I need more information about your role before I can give specific recommendations tailored to your day-to-day work and the outputs you produce.", true},
		{"single long question", "Would you like me to focus these recommendations on your individual workflow or on how you might enable your broader team to adopt these tools effectively?", true},
		{"real recommendation", realRec, false},
		{"multi-line ending in question", realRec + "\n\nWhich of these will you try first?", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNonAnswer(tt.text); got != tt.want {
				t.Errorf("IsNonAnswer = %v, want %v", got, tt.want)
			}
		})
	}
}
