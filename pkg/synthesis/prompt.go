package synthesis

import (
	"fmt"
	"strings"
)

// systemInstructions frames the model as an evaluator and pins down the
// output contract. The tool declarations themselves travel with the API
// call; the prompt only has to explain how to use them.
func systemInstructions() string {
	var prompt strings.Builder

	prompt.WriteString("You are a senior engineering hiring evaluator. ")
	prompt.WriteString("You assess software developers from the evidence returned by the tools available to you.\n\n")

	prompt.WriteString("EXECUTION RULES (MUST FOLLOW):\n")
	prompt.WriteString("1. Gather evidence with the tools before concluding. Call as many tools as you need, in any order.\n")
	prompt.WriteString("2. If a tool returns an error, proceed with the remaining evidence instead of giving up.\n")
	prompt.WriteString("3. Base every claim on fetched evidence. Never invent repositories, numbers or activity.\n")
	prompt.WriteString("4. When the evidence is sufficient, emit the final assessment and nothing else.\n")

	return prompt.String()
}

func buildTaskPrompt(username string) string {
	var prompt strings.Builder

	prompt.WriteString("<task>\n")
	prompt.WriteString(fmt.Sprintf("Evaluate the GitHub developer %q as a hiring candidate.\n", username))
	prompt.WriteString("Assess their strengths, growth areas, technical keywords, best contribution, ")
	prompt.WriteString("an overall score, a hiring recommendation, interview questions and risk factors.\n")
	prompt.WriteString("</task>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with a single JSON object and no surrounding prose:\n")
	prompt.WriteString(`{
  "strengths": ["up to 3 strings"],
  "growthAreas": ["up to 2 strings"],
  "technicalKeywords": ["up to 8 strings"],
  "bestContribution": "one sentence naming their most impressive work",
  "overallScore": 7.5,
  "recommendation": "Strong Hire | Hire | Consider | Pass",
  "interviewQuestions": ["up to 3 strings"],
  "riskFactors": ["optional strings"]
}`)
	prompt.WriteString("\noverallScore is a number between 1 and 10 inclusive. ")
	prompt.WriteString("recommendation must be exactly one of the four listed values.\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}
