package domain

import "time"

// Event types
const (
	EventTypeWalletCreated     = "wallet.created"
	EventTypeWalletDeleted     = "wallet.deleted"
	EventTypeTransactionPosted = "transaction.posted"
)

// Aggregate types
const (
	AggregateTypeWallet      = "wallet"
	AggregateTypeTransaction = "transaction"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// WalletCreatedEvent payload
type WalletCreatedEvent struct {
	WalletID string `json:"wallet_id"`
	Label    string `json:"label"`
}

// WalletDeletedEvent payload
type WalletDeletedEvent struct {
	WalletID string `json:"wallet_id"`
	Label    string `json:"label"`
	Balance  string `json:"balance"`
}

// TransactionPostedEvent payload
type TransactionPostedEvent struct {
	TransactionID string `json:"transaction_id"`
	WalletID      string `json:"wallet_id"`
	TxID          string `json:"txid"`
	Amount        string `json:"amount"`
	Balance       string `json:"balance"`
}
