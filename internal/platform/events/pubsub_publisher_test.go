package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/qonuniy/api/internal/services"
)

func TestPubSubViewPublisherPublishesMessage(t *testing.T) {
	ctx := context.Background()
	srv := pstest.NewServer()
	defer srv.Close()

	client, err := pubsub.NewClient(ctx, "test-project",
		option.WithEndpoint(srv.Addr),
		option.WithoutAuthentication(),
		option.WithGRPCDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
	)
	if err != nil {
		t.Fatalf("pubsub.NewClient: %v", err)
	}
	defer func() {
		_ = client.Close()
	}()

	topic, err := client.CreateTopic(ctx, "content-views")
	if err != nil {
		t.Fatalf("CreateTopic: %v", err)
	}

	publisher, err := NewPubSubViewPublisher(topic)
	if err != nil {
		t.Fatalf("NewPubSubViewPublisher: %v", err)
	}

	event := services.ViewEvent{
		Kind:       "article",
		ItemID:     "doc-1",
		ViewerID:   "viewer-1",
		OccurredAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
	if _, err := publisher.PublishView(ctx, event); err != nil {
		t.Fatalf("PublishView: %v", err)
	}

	messages := srv.Messages()
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}

	var payload services.ViewEvent
	if err := json.Unmarshal(messages[0].Data, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.ItemID != event.ItemID || payload.ViewerID != event.ViewerID {
		t.Fatalf("unexpected payload %#v", payload)
	}
	if attr := messages[0].Attributes["event"]; attr != "content.viewed" {
		t.Fatalf("expected event attribute, got %q", attr)
	}
	if attr := messages[0].Attributes["kind"]; attr != "article" {
		t.Fatalf("expected kind attribute, got %q", attr)
	}
}

func TestNewPubSubViewPublisherRequiresTopic(t *testing.T) {
	if _, err := NewPubSubViewPublisher(nil); err == nil {
		t.Fatal("expected error for nil topic")
	}
}
