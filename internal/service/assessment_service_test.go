package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"path/filepath"
	"strings"
	"testing"

	"dev-assessment-be/internal/dto"
	"dev-assessment-be/internal/pkg/logger"
	"dev-assessment-be/pkg/evidence"
	"dev-assessment-be/pkg/github"
	"dev-assessment-be/pkg/llm"
	"dev-assessment-be/pkg/synthesis"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// fixedProvider answers every turn with the same text, streamed word by
// word, and never requests tools.
type fixedProvider struct {
	text string
	err  error
}

func (p *fixedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return p.text, p.err
}

func (p *fixedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.text, p.err
}

func (p *fixedProvider) StreamChat(ctx context.Context, history []llm.Message, tools []llm.Tool, onChunk llm.StreamHandler, options ...llm.Option) (*llm.Turn, error) {
	if p.err != nil {
		return nil, p.err
	}
	for _, word := range strings.SplitAfter(p.text, " ") {
		if word != "" {
			onChunk(word)
		}
	}
	return &llm.Turn{Text: p.text}, nil
}

type capturingPublisher struct {
	payloads [][]byte
}

func (c *capturingPublisher) Publish(ctx context.Context, payload []byte) error {
	c.payloads = append(c.payloads, payload)
	return nil
}

const goodAnswer = `{
	"strengths": ["Go expertise"],
	"growthAreas": ["Frontend"],
	"technicalKeywords": ["go"],
	"bestContribution": "Built the ingest pipeline.",
	"overallScore": 9,
	"recommendation": "Strong Hire",
	"interviewQuestions": ["Q1"]
}`

func newTestService(t *testing.T, provider llm.LLMProvider, pub IStreamPublisher) IAssessmentService {
	t.Helper()
	catalog := evidence.NewCatalog(evidence.NewToolset(github.NewClient("http://127.0.0.1:0", "")))
	orch := synthesis.NewOrchestrator(provider, catalog, log.New(io.Discard, "", 0), 0.2, 1024)
	sysLogger := logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "test.log"))
	return NewAssessmentService(orch, pub, nil, sysLogger)
}

func TestAnalyzeReturnsValidatedAssessment(t *testing.T) {
	svc := newTestService(t, &fixedProvider{text: goodAnswer}, &capturingPublisher{})

	res, err := svc.Analyze(context.Background(), &dto.AnalyzeRequest{Username: "octocat"})
	assert.NoError(t, err)
	assert.Equal(t, "octocat", res.Username)
	assert.Equal(t, "Strong Hire", res.Assessment.Recommendation)
	assert.Equal(t, float64(9), res.Assessment.OverallScore)
}

func TestAnalyzeSubstitutesFallbackForGarbage(t *testing.T) {
	svc := newTestService(t, &fixedProvider{text: "no json here, sorry"}, &capturingPublisher{})

	res, err := svc.Analyze(context.Background(), &dto.AnalyzeRequest{Username: "octocat"})
	assert.NoError(t, err, "a malformed answer is recovered, not surfaced")
	assert.Equal(t, synthesis.FallbackAssessment(), res.Assessment)
}

func TestAnalyzeStreamsChunksWithTerminalMarker(t *testing.T) {
	pub := &capturingPublisher{}
	svc := newTestService(t, &fixedProvider{text: goodAnswer}, pub)

	streamID := uuid.New()
	_, err := svc.Analyze(context.Background(), &dto.AnalyzeRequest{Username: "octocat", StreamId: &streamID})
	assert.NoError(t, err)
	assert.NotEmpty(t, pub.payloads)

	var rebuilt strings.Builder
	for i, raw := range pub.payloads {
		var msg dto.StreamChunkMessage
		assert.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, streamID, msg.StreamId)
		assert.Equal(t, i+1, msg.Seq, "sequence numbers must be contiguous from 1")

		last := i == len(pub.payloads)-1
		assert.Equal(t, last, msg.Done, "only the terminal message carries done=true")
		rebuilt.WriteString(msg.Text)
	}
	assert.Equal(t, goodAnswer, rebuilt.String(), "chunks must reassemble to the full answer")
}

func TestAnalyzeSurfacesModelRuntimeFailure(t *testing.T) {
	pub := &capturingPublisher{}
	svc := newTestService(t, &fixedProvider{err: errors.New("connection refused")}, pub)

	streamID := uuid.New()
	_, err := svc.Analyze(context.Background(), &dto.AnalyzeRequest{Username: "octocat", StreamId: &streamID})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "model runtime failure")

	// the stream still terminates
	last := pub.payloads[len(pub.payloads)-1]
	var msg dto.StreamChunkMessage
	assert.NoError(t, json.Unmarshal(last, &msg))
	assert.True(t, msg.Done)
}
