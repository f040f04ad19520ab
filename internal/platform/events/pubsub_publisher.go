// Package events publishes analytics events to Pub/Sub.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/pubsub"

	"github.com/qonuniy/api/internal/services"
)

// PubSubViewPublisher publishes content.viewed events to a Pub/Sub topic.
type PubSubViewPublisher struct {
	topic   *pubsub.Topic
	marshal func(any) ([]byte, error)
}

// NewPubSubViewPublisher constructs a Pub/Sub backed view event publisher.
func NewPubSubViewPublisher(topic *pubsub.Topic) (*PubSubViewPublisher, error) {
	if topic == nil {
		return nil, errors.New("pubsub view publisher: topic is required")
	}
	return &PubSubViewPublisher{
		topic:   topic,
		marshal: json.Marshal,
	}, nil
}

// PublishView enqueues a view event message on the configured topic.
func (p *PubSubViewPublisher) PublishView(ctx context.Context, event services.ViewEvent) (string, error) {
	if p == nil || p.topic == nil {
		return "", errors.New("pubsub view publisher: not initialised")
	}

	data, err := p.marshal(event)
	if err != nil {
		return "", fmt.Errorf("marshal view event: %w", err)
	}

	attrs := map[string]string{"event": "content.viewed"}
	setAttr(attrs, "kind", event.Kind)
	setAttr(attrs, "itemId", event.ItemID)
	setAttr(attrs, "viewerId", event.ViewerID)

	result := p.topic.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: attrs,
	})

	id, err := result.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("publish view event: %w", err)
	}
	return id, nil
}

func setAttr(attrs map[string]string, key, value string) {
	if value != "" {
		attrs[key] = value
	}
}
