package amqp

import (
	"testing"
	"time"
)

func TestPaymentDueMessageRoundTrip(t *testing.T) {
	msg := NewPaymentDueMessage("card-1", "Everyday", "ACME Bank", "2025-05-25")
	if msg.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON error = %v", err)
	}

	got, err := PaymentDueMessageFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON error = %v", err)
	}
	if got.CardID != "card-1" || got.CardName != "Everyday" || got.BankName != "ACME Bank" {
		t.Errorf("unexpected message: %+v", got)
	}
	if got.DueDate != "2025-05-25" {
		t.Errorf("DueDate = %s", got.DueDate)
	}
	if !got.Timestamp.Truncate(time.Second).Equal(msg.Timestamp.Truncate(time.Second)) {
		t.Errorf("timestamp drifted: %v vs %v", got.Timestamp, msg.Timestamp)
	}
}

func TestPaymentDueMessageFromJSONInvalid(t *testing.T) {
	if _, err := PaymentDueMessageFromJSON([]byte("{not json")); err == nil {
		t.Error("expected error for malformed payload")
	}
}
