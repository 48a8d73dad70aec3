package synthesis

import (
	"strings"
	"testing"
)

func TestBuildTaskPromptNamesTheSubject(t *testing.T) {
	prompt := buildTaskPrompt("octocat")

	if !strings.Contains(prompt, "octocat") {
		t.Error("prompt must name the subject")
	}
	for _, field := range []string{"strengths", "growthAreas", "technicalKeywords", "bestContribution", "overallScore", "recommendation", "interviewQuestions"} {
		if !strings.Contains(prompt, field) {
			t.Errorf("prompt must spell out output field %q", field)
		}
	}
}

func TestSystemInstructionsMentionTools(t *testing.T) {
	instructions := systemInstructions()
	if !strings.Contains(strings.ToLower(instructions), "tool") {
		t.Error("instructions must direct the model to use the evidence tools")
	}
}
