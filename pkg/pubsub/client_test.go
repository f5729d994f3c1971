package pubsub

import (
	"context"
	"testing"

	"github.com/prakashthakuri/Happy-Hours/pkg/config"
)

func TestResourceNames(t *testing.T) {
	c := &Client{projectID: "hh-prod"}

	if got := c.topicResourceName("hh-order-events"); got != "projects/hh-prod/topics/hh-order-events" {
		t.Fatalf("unexpected topic name %q", got)
	}
	if got := c.topicResourceName("projects/other/topics/x"); got != "projects/other/topics/x" {
		t.Fatalf("full topic name should pass through, got %q", got)
	}
	if got := c.subscriptionResourceName(" delivery "); got != "projects/hh-prod/subscriptions/delivery" {
		t.Fatalf("unexpected subscription name %q", got)
	}
	if got := c.topicResourceName(""); got != "" {
		t.Fatalf("blank names must stay blank, got %q", got)
	}
	if got := (&Client{}).topicResourceName("x"); got != "" {
		t.Fatalf("missing project must yield blank name, got %q", got)
	}
}

func TestNewClientValidatesConfig(t *testing.T) {
	ctx := context.Background()
	if _, err := NewClient(ctx, config.GCPConfig{}, config.PubSubConfig{OrdersTopic: "t"}, nil); err != errProjectIDRequired {
		t.Fatalf("expected project id error, got %v", err)
	}
	if _, err := NewClient(ctx, config.GCPConfig{ProjectID: "p"}, config.PubSubConfig{}, nil); err != errNoOrdersTopic {
		t.Fatalf("expected topic error, got %v", err)
	}
}

func TestNilClientIsSafe(t *testing.T) {
	var c *Client
	if c.Publisher("x") != nil {
		t.Fatal("nil client must not return a publisher")
	}
	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("expected ping error on nil client")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close on nil client: %v", err)
	}
}
