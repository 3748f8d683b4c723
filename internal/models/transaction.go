package models

// Transaction is an incoming payment extracted from a provider notification.
// The JSON field names match the ledger API wire contract.
type Transaction struct {
	Provider    Provider `json:"provider"`     // Provider is the mobile-money service the notification came from.
	Sender      string   `json:"sender"`       // Sender is the original sender identifier, trimmed.
	Message     string   `json:"message"`      // Message is the normalized notification body, capped at 1000 characters.
	AmountPaisa int64    `json:"amount_paisa"` // AmountPaisa is the received amount in currency minor units.
	TrxID       string   `json:"trx_id"`       // TrxID is the provider transaction identifier, uppercased.
}

// QueuedTransaction wraps a transaction held in the offline queue.
type QueuedTransaction struct {
	ID          string      `json:"id"`          // ID is a unique identifier assigned at enqueue time.
	Transaction Transaction `json:"transaction"` // Transaction is the payload awaiting delivery.
	EnqueuedAt  int64       `json:"enqueued_at"` // EnqueuedAt is the enqueue time as unix milliseconds.
	Retries     int         `json:"retries"`     // Retries counts failed flush attempts for this item.
}
