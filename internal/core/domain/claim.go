package domain

import "time"

// ClaimStatus is the state of a claim record.
type ClaimStatus string

const (
	ClaimPending   ClaimStatus = "PENDING"
	ClaimCompleted ClaimStatus = "COMPLETED"
)

// ClaimRecord is the idempotency guard for re-claiming a rejected or
// failed transaction. The (UserID, OriginalTransactionID) pair is unique
// in the store; the existence of that row is the sole source of truth for
// "already claimed" regardless of crashes between insert and credit.
type ClaimRecord struct {
	ClaimID               string      `json:"claimID"`
	UserID                string      `json:"userID"`
	OriginalTransactionID string      `json:"originalTransactionID"`
	ClaimTransactionID    string      `json:"claimTransactionID,omitempty"`
	Status                ClaimStatus `json:"status"`
	CreatedAt             time.Time   `json:"createdAt"`
}
