package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dev-assessment-be/internal/dto"
	"dev-assessment-be/internal/pkg/logger"
	"dev-assessment-be/pkg/events"
	pktNats "dev-assessment-be/pkg/nats" // Renamed to avoid collision
	"dev-assessment-be/pkg/synthesis"

	"github.com/google/uuid"
)

type IAssessmentService interface {
	Analyze(ctx context.Context, req *dto.AnalyzeRequest) (*dto.AnalyzeResponse, error)
}

type assessmentService struct {
	orchestrator    *synthesis.Orchestrator
	streamPublisher IStreamPublisher
	eventPublisher  *pktNats.Publisher
	logger          logger.ILogger
}

func NewAssessmentService(
	orchestrator *synthesis.Orchestrator,
	streamPublisher IStreamPublisher,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IAssessmentService {
	return &assessmentService{
		orchestrator:    orchestrator,
		streamPublisher: streamPublisher,
		eventPublisher:  eventPublisher,
		logger:          log,
	}
}

// Analyze runs one full synthesis for a subject. Stream chunks go out on
// the in-process bus while the loop runs; the final answer is validated
// (or replaced by the fallback) and returned. Only a model runtime
// transport failure surfaces as an error.
func (s *assessmentService) Analyze(ctx context.Context, req *dto.AnalyzeRequest) (*dto.AnalyzeResponse, error) {
	var sink synthesis.Sink
	if req.StreamId != nil {
		var finish func()
		sink, finish = s.newStreamSink(ctx, *req.StreamId)
		defer finish()
	}

	answer, err := s.orchestrator.Run(ctx, req.Username, sink)
	if err != nil {
		s.logger.Error("AssessmentService", "Synthesis failed", map[string]interface{}{
			"username": req.Username,
			"error":    err.Error(),
		})
		s.publishEvent(ctx, events.NewAssessmentFailed(req.Username, err.Error()))
		return nil, fmt.Errorf("analysis for %s failed: %w", req.Username, err)
	}

	assessment := synthesis.ValidateAnswer(answer)

	s.logger.Info("AssessmentService", "Assessment completed", map[string]interface{}{
		"username":       req.Username,
		"score":          assessment.OverallScore,
		"recommendation": assessment.Recommendation,
	})
	s.publishEvent(ctx, events.NewAssessmentCompleted(req.Username, assessment.OverallScore, assessment.Recommendation))

	return &dto.AnalyzeResponse{
		Username:   req.Username,
		StreamId:   req.StreamId,
		Assessment: assessment,
	}, nil
}

// newStreamSink returns a sequenced chunk sink for one stream plus a
// finish func that emits the terminal done marker. Publish failures are
// logged, never propagated — the stream is a side channel.
func (s *assessmentService) newStreamSink(ctx context.Context, streamID uuid.UUID) (synthesis.Sink, func()) {
	seq := 0
	publish := func(text string, done bool) {
		seq++
		payload, err := json.Marshal(dto.StreamChunkMessage{
			StreamId: streamID,
			Seq:      seq,
			Text:     text,
			Done:     done,
		})
		if err != nil {
			return
		}
		if err := s.streamPublisher.Publish(ctx, payload); err != nil {
			s.logger.Warn("AssessmentService", "Failed to publish stream chunk", map[string]interface{}{
				"stream_id": streamID,
				"error":     err.Error(),
			})
		}
	}

	sink := func(chunk string) { publish(chunk, false) }
	finish := func() { publish("", true) }
	return sink, finish
}

func (s *assessmentService) publishEvent(ctx context.Context, evt events.BaseEvent) {
	if s.eventPublisher == nil {
		return
	}
	// Bounded so a slow broker cannot hold the response hostage.
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := s.eventPublisher.Publish(pubCtx, evt); err != nil {
		s.logger.Warn("AssessmentService", "Failed to publish event", map[string]interface{}{
			"type":  evt.EventType(),
			"error": err.Error(),
		})
	}
}
