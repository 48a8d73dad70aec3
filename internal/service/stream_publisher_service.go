package service

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IStreamPublisher puts stream chunk payloads on the in-process bus; the
// StreamConsumerService picks them up and fans them out to websockets.
type IStreamPublisher interface {
	Publish(ctx context.Context, payload []byte) error
}

type streamPublisher struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewStreamPublisher(topicName string, pubSub *gochannel.GoChannel) IStreamPublisher {
	return &streamPublisher{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (p *streamPublisher) Publish(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return p.pubSub.Publish(p.topicName, msg)
}
