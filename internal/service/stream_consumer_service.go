package service

import (
	"context"
	"encoding/json"

	"dev-assessment-be/internal/dto"
	"dev-assessment-be/internal/pkg/logger"
	"dev-assessment-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IStreamConsumerService interface {
	Consume(ctx context.Context) error
}

// streamConsumerService forwards stream chunk messages from the
// in-process bus to the websocket hub. Decoupling the orchestrator's sink
// from websocket delivery keeps the synthesis loop free of transport
// concerns.
type streamConsumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	hub       *websocket.Hub
	logger    logger.ILogger
}

func NewStreamConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	hub *websocket.Hub,
	log logger.ILogger,
) IStreamConsumerService {
	return &streamConsumerService{
		pubSub:    pubSub,
		topicName: topicName,
		hub:       hub,
		logger:    log,
	}
}

func (cs *streamConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *streamConsumerService) processMessage(msg *message.Message) {
	var payload dto.StreamChunkMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("StreamConsumer", "Failed to unmarshal chunk message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.hub.Send(payload.StreamId, msg.Payload)
	msg.Ack()
}
