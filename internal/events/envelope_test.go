package events

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewUserEnvelope(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	env, err := NewUserEnvelope(UserDeleted, "u1", "a@x.com", at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got["event_type"] != "user.deleted" || got["aggregate_type"] != "user" || got["aggregate_id"] != "u1" {
		t.Fatalf("unexpected envelope %v", got)
	}
	payload, _ := got["payload"].(map[string]any)
	if payload["email"] != "a@x.com" {
		t.Fatalf("unexpected payload %v", got["payload"])
	}
}

func TestNewRedisPublisherDefaultsChannel(t *testing.T) {
	if p := NewRedisPublisher(nil, ""); p.channel != DefaultChannel {
		t.Fatalf("expected %s, got %s", DefaultChannel, p.channel)
	}
}
