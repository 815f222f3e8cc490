package models

import "time"

// Claim is the claims table row. (user_id, original_transaction_id) carries
// a unique constraint; that constraint is the idempotency guard.
type Claim struct {
	ClaimID               string    `db:"claim_id"`
	UserID                string    `db:"user_id"`
	OriginalTransactionID string    `db:"original_transaction_id"`
	ClaimTransactionID    *string   `db:"claim_transaction_id"`
	Status                string    `db:"status"`
	CreatedAt             time.Time `db:"created_at"`
}
