package amqp

import (
	"testing"
	"time"
)

func TestTransactionEventRoundTrip(t *testing.T) {
	event := NewTransactionEvent(12, 7, ActionCreated)
	if event.Timestamp.IsZero() {
		t.Fatalf("timestamp must be set")
	}

	body, err := event.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	back, err := TransactionEventFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.TransactionID != 12 || back.UserID != 7 || back.Action != ActionCreated {
		t.Fatalf("round trip mismatch: %+v", back)
	}
	if back.Timestamp.Sub(event.Timestamp) > time.Second {
		t.Fatalf("timestamp drifted: %v vs %v", back.Timestamp, event.Timestamp)
	}
}

func TestTransactionEventFromJSONInvalid(t *testing.T) {
	if _, err := TransactionEventFromJSON([]byte("not json")); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}
