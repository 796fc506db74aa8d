package amqp

import (
	"encoding/json"
	"time"
)

// Event kinds carried on the ledger events queue.
const (
	KindPurchaseLaunched = "purchase_launched"
	KindRecordsDeleted   = "records_deleted"
)

// LedgerEventMessage represents a lightweight notification of a ledger
// mutation. It carries only the purchase group id and the affected row
// count; consumers fetch current state from the store.
type LedgerEventMessage struct {
	Kind      string    `json:"kind"`
	ParentID  int64     `json:"parent_id"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

// NewPurchaseLaunchedMessage creates a message for a freshly launched purchase
func NewPurchaseLaunchedMessage(parentID int64, count int) *LedgerEventMessage {
	return &LedgerEventMessage{
		Kind:      KindPurchaseLaunched,
		ParentID:  parentID,
		Count:     count,
		Timestamp: time.Now(),
	}
}

// NewRecordsDeletedMessage creates a message for a deleted purchase group
func NewRecordsDeletedMessage(parentID int64, count int) *LedgerEventMessage {
	return &LedgerEventMessage{
		Kind:      KindRecordsDeleted,
		ParentID:  parentID,
		Count:     count,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventMessageFromJSON creates a message from JSON bytes
func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
