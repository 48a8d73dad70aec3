package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"dev-assessment-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// redisChannel carries stream chunks between instances so a caller can
// subscribe on any node regardless of which node runs the assessment.
const redisChannel = "assessment_stream_events"

type Hub struct {
	// Registered clients map: StreamID -> List of Clients (multi-consumer)
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	// instanceID identifies this hub on the relay channel so it can skip
	// messages it published itself.
	instanceID string

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

// relayMessage is the envelope carried on the redis relay channel.
type relayMessage struct {
	Origin         string          `json:"origin"`
	TargetStreamID string          `json:"target_stream_id"`
	Message        json.RawMessage `json:"message"`
}

func (h *Hub) Run() {
	// Start Redis Subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.StreamID] = append(h.clients[client.StreamID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"stream_id": client.StreamID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.StreamID]; ok {
				for i, c := range clients {
					if c == client {
						// Remove from slice
						h.clients[client.StreamID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.StreamID]) == 0 {
					delete(h.clients, client.StreamID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"stream_id": client.StreamID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send delivers a chunk payload to every local subscriber of a stream and
// relays it over redis for subscribers held by other instances. The relay
// carries this hub's id so its own subscriber ignores the echo.
func (h *Hub) Send(streamID uuid.UUID, data []byte) {
	h.sendLocal(streamID, data)

	if h.rdb != nil {
		jsonPayload, _ := json.Marshal(relayMessage{
			Origin:         h.instanceID,
			TargetStreamID: streamID.String(),
			Message:        data,
		})
		h.rdb.Publish(context.Background(), redisChannel, jsonPayload)
	}
}

// sendLocal pushes a payload to every local subscriber of a stream. A
// client whose buffer is full is handed to unregister; Run is the single
// owner of closing Send channels.
func (h *Hub) sendLocal(streamID uuid.UUID, data []byte) {
	h.mu.RLock()
	clients := h.clients[streamID]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client Send buffer full, dropping client", map[string]interface{}{"stream_id": streamID})
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	// Every instance subscribes to the shared channel; messages carry the
	// target stream id and are dropped locally when no subscriber exists.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, redisChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.handleRelayMessage([]byte(msg.Payload))
	}
}

// handleRelayMessage delivers a relayed chunk to local subscribers,
// skipping messages this instance published itself.
func (h *Hub) handleRelayMessage(raw []byte) {
	var payload relayMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.logger.Error("Hub", "Failed to parse relay message", map[string]interface{}{"error": err.Error()})
		return
	}
	if payload.Origin == h.instanceID {
		return
	}

	sid, err := uuid.Parse(payload.TargetStreamID)
	if err != nil {
		return
	}
	h.sendLocal(sid, payload.Message)
}
