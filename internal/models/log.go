package models

// Log entry statuses.
const (
	StatusSent    = "sent"    // delivered to the ledger
	StatusIgnored = "ignored" // recognized but already processed
	StatusFailed  = "failed"  // delivery failed or deferred
)

// LogEntry records the outcome of processing one transaction.
type LogEntry struct {
	ID          string   `json:"id" db:"log_id"`
	Timestamp   int64    `json:"timestamp" db:"ts"` // unix milliseconds
	Provider    Provider `json:"provider" db:"provider"`
	TrxID       string   `json:"trx_id" db:"trx_id"`
	AmountPaisa int64    `json:"amount_paisa" db:"amount_paisa"`
	Status      string   `json:"status" db:"status"`
	Error       string   `json:"error,omitempty" db:"error"`
}
