package pubsub

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func receive(t *testing.T, sub Subscription) Event {
	t.Helper()
	select {
	case event := <-sub.Events():
		return event
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
		return Event{}
	}
}

func TestReplayLastOnly(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()
	pub.ConfigureTopic(TopicNetwork, TopicConfig{BufferSize: 3})

	for i := 1; i <= 3; i++ {
		if err := pub.Publish(TopicNetwork, EventReloaded, NetworkStatus{Routes: i}); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
	}

	sub, err := pub.Subscribe(context.Background(), TopicNetwork)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	defer sub.Close()

	event := receive(t, sub)
	if event.Version != 3 {
		t.Errorf("expected version 3, got %d", event.Version)
	}
	var status NetworkStatus
	if err := json.Unmarshal(event.Data, &status); err != nil {
		t.Fatal(err)
	}
	if status.Routes != 3 {
		t.Errorf("expected replay of last status, got %+v", status)
	}

	select {
	case extra := <-sub.Events():
		t.Errorf("unexpected extra event %+v", extra)
	default:
	}
}

func TestReplayAllBounded(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()
	pub.ConfigureTopic("t", TopicConfig{BufferSize: 2, ReplayAll: true})

	for i := 0; i < 5; i++ {
		_ = pub.Publish("t", "e", i)
	}

	sub, err := pub.Subscribe(context.Background(), "t")
	if err != nil {
		t.Fatal(err)
	}
	if v := receive(t, sub).Version; v != 4 {
		t.Errorf("expected version 4, got %d", v)
	}
	if v := receive(t, sub).Version; v != 5 {
		t.Errorf("expected version 5, got %d", v)
	}
}

func TestLivePublishAndUnsubscribe(t *testing.T) {
	pub := NewSSEPublisher()
	defer pub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := pub.Subscribe(ctx, TopicNetwork)
	if err != nil {
		t.Fatal(err)
	}

	_ = pub.Publish(TopicNetwork, EventLoaded, NetworkStatus{Routes: 2})
	if e := receive(t, sub); e.Type != EventLoaded {
		t.Errorf("expected %s, got %s", EventLoaded, e.Type)
	}

	cancel()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		pub.mu.RLock()
		n := len(pub.subscriptions[TopicNetwork])
		pub.mu.RUnlock()
		if n == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("subscription not removed after context cancellation")
}

func TestClosedPublisher(t *testing.T) {
	pub := NewSSEPublisher()
	pub.Close()

	if err := pub.Publish("t", "e", nil); err == nil {
		t.Error("expected error publishing on closed publisher")
	}
	if _, err := pub.Subscribe(context.Background(), "t"); err == nil {
		t.Error("expected error subscribing to closed publisher")
	}
}

func TestWriteSSE(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSSE(&buf, Event{Topic: TopicNetwork, Type: EventLoaded, Data: json.RawMessage(`{}`), Version: 1}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "data: {") || !strings.HasSuffix(out, "}\n\n") {
		t.Errorf("unexpected SSE framing %q", out)
	}
}
