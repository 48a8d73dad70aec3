package dto

import (
	"github.com/google/uuid"

	"dev-assessment-be/pkg/synthesis"
)

type AnalyzeRequest struct {
	Username string `json:"username" validate:"required,min=1,max=39"`

	// StreamId is optional: when set, stream chunks are delivered to
	// websocket subscribers of this id while the analysis runs.
	StreamId *uuid.UUID `json:"stream_id,omitempty"`
}

type AnalyzeResponse struct {
	Username   string               `json:"username"`
	StreamId   *uuid.UUID           `json:"stream_id,omitempty"`
	Assessment synthesis.Assessment `json:"assessment"`
}

// StreamChunkMessage is the payload carried over the in-process stream
// topic and pushed to websocket subscribers. Done marks the terminal
// message of a stream.
type StreamChunkMessage struct {
	StreamId uuid.UUID `json:"stream_id"`
	Seq      int       `json:"seq"`
	Text     string    `json:"text"`
	Done     bool      `json:"done"`
}
