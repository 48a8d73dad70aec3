package events

import "time"

const (
	TypeAssessmentCompleted = "ASSESSMENT_COMPLETED"
	TypeAssessmentFailed    = "ASSESSMENT_FAILED"
)

// NewAssessmentCompleted signals that a subject's assessment finished and
// a validated result was returned to the caller.
func NewAssessmentCompleted(username string, score float64, recommendation string) BaseEvent {
	return BaseEvent{
		Type: TypeAssessmentCompleted,
		Data: map[string]interface{}{
			"username":       username,
			"score":          score,
			"recommendation": recommendation,
		},
		OccurredAt: time.Now(),
	}
}

// NewAssessmentFailed signals a model runtime transport failure; tool
// level upstream failures never produce this event.
func NewAssessmentFailed(username, reason string) BaseEvent {
	return BaseEvent{
		Type: TypeAssessmentFailed,
		Data: map[string]interface{}{
			"username": username,
			"reason":   reason,
		},
		OccurredAt: time.Now(),
	}
}
