// Package events carries assistant notifications between components over an
// in-process watermill pub/sub.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.uber.org/zap"

	"github.com/alexanderramin/coach/internal/domain"
)

// TopicPreferenceChanged carries PreferenceChanged payloads.
const TopicPreferenceChanged = "preference.changed"

// Source says what changed the preference.
type Source string

const (
	SourceExplicit Source = "explicit"
	SourceInferred Source = "inferred"
)

// PreferenceChanged is published whenever a session's current variant is set,
// explicitly or by inference.
type PreferenceChanged struct {
	SessionID string         `json:"session_id"`
	Variant   domain.Variant `json:"variant"`
	Source    Source         `json:"source"`
	At        time.Time      `json:"at"`
}

// Bus is a process-local event bus.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger *zap.Logger
}

// subscriberBuffer bounds how far a subscriber can lag before Publish blocks.
const subscriberBuffer = 16

// NewBus creates a bus. Messages published with no subscriber are dropped.
// Publish returns once every subscriber has taken the message, so each
// subscriber sees events in publish order.
func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := gochannel.Config{
		OutputChannelBuffer:            subscriberBuffer,
		BlockPublishUntilSubscriberAck: true,
	}
	return &Bus{
		pubsub: gochannel.NewGoChannel(cfg, NewZapAdapter(logger)),
		logger: logger,
	}
}

func (b *Bus) PublishPreferenceChanged(ctx context.Context, evt PreferenceChanged) error {
	if evt.At.IsZero() {
		evt.At = time.Now().UTC()
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encoding preference event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	if err := b.pubsub.Publish(TopicPreferenceChanged, msg); err != nil {
		return fmt.Errorf("publishing preference event: %w", err)
	}
	return nil
}

// SubscribePreferenceChanged returns a channel of decoded events. The channel
// closes when ctx is cancelled or the bus is closed. Undecodable messages are
// acked and skipped.
func (b *Bus) SubscribePreferenceChanged(ctx context.Context) (<-chan PreferenceChanged, error) {
	messages, err := b.pubsub.Subscribe(ctx, TopicPreferenceChanged)
	if err != nil {
		return nil, fmt.Errorf("subscribing to %s: %w", TopicPreferenceChanged, err)
	}

	out := make(chan PreferenceChanged, subscriberBuffer)
	go func() {
		defer close(out)
		for msg := range messages {
			var evt PreferenceChanged
			if err := json.Unmarshal(msg.Payload, &evt); err != nil {
				msg.Ack()
				b.logger.Warn("dropping malformed preference event",
					zap.String("message_uuid", msg.UUID), zap.Error(err))
				continue
			}
			// Ack only once forwarded: the publisher waits on it.
			select {
			case out <- evt:
				msg.Ack()
			case <-ctx.Done():
				msg.Ack()
				return
			}
		}
	}()
	return out, nil
}

// Close stops the bus and closes every subscription.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}
