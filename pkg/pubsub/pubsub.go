package pubsub

import (
	"context"
	"encoding/json"
)

// TopicNetwork carries the state of the served trail network
const TopicNetwork = "network"

// Event types published on TopicNetwork
const (
	EventLoaded       = "loaded"
	EventReloaded     = "reloaded"
	EventReloadFailed = "reload_failed"
)

// Event represents a pub/sub event
type Event struct {
	Topic   string          `json:"topic"`
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data"`
	Version int             `json:"version"` // per topic, increasing
}

// Subscription represents a client subscription to a topic
type Subscription interface {
	Topic() string
	Events() <-chan Event
	Close() error
}

// Publisher manages pub/sub subscriptions and event publishing
type Publisher interface {
	// Subscribe creates a new subscription to a topic.
	// Context cancellation will close the subscription.
	Subscribe(ctx context.Context, topic string) (Subscription, error)

	// Publish sends an event to all subscribers of a topic
	Publish(topic string, eventType string, data interface{}) error

	Close() error
}

// NetworkStatus summarizes the route set currently served
type NetworkStatus struct {
	File       string `json:"file,omitempty"`
	Routes     int    `json:"routes"`
	Nodes      int    `json:"nodes"`
	Edges      int    `json:"edges"`
	Components int    `json:"components"`
	Error      string `json:"error,omitempty"`
}
