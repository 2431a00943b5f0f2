package amqp

import (
	"encoding/json"
	"time"
)

// PaymentDueMessage announces that a card's statement payment is coming due.
// The worker persists it as a user-facing notification.
type PaymentDueMessage struct {
	CardID    string    `json:"card_id"`
	CardName  string    `json:"card_name"`
	BankName  string    `json:"bank_name"`
	DueDate   string    `json:"due_date"`
	Timestamp time.Time `json:"timestamp"`
}

func NewPaymentDueMessage(cardID, cardName, bankName, dueDate string) *PaymentDueMessage {
	return &PaymentDueMessage{
		CardID:    cardID,
		CardName:  cardName,
		BankName:  bankName,
		DueDate:   dueDate,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *PaymentDueMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// PaymentDueMessageFromJSON creates a message from JSON bytes
func PaymentDueMessageFromJSON(data []byte) (*PaymentDueMessage, error) {
	var msg PaymentDueMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
