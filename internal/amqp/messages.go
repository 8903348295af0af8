package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"despesas/internal/core"
)

// ExpenseRecordedMessage announces one expense added through the recorder.
type ExpenseRecordedMessage struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Category    string    `json:"category"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewExpenseRecordedMessage creates a message with a fresh id.
func NewExpenseRecordedMessage(e core.Expense, now time.Time) *ExpenseRecordedMessage {
	return &ExpenseRecordedMessage{
		ID:          uuid.NewString(),
		Date:        e.Date.Canonical(),
		Category:    e.Category,
		Amount:      e.Amount.String(),
		Description: e.Description,
		Timestamp:   now,
	}
}

// ToJSON converts the message to JSON bytes
func (m *ExpenseRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseRecordedMessageFromJSON creates a message from JSON bytes
func ExpenseRecordedMessageFromJSON(data []byte) (*ExpenseRecordedMessage, error) {
	var msg ExpenseRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
