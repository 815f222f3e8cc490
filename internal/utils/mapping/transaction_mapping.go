package mapping

import (
	"github.com/finwallet/wallet_ledger/internal/core/domain"
	"github.com/finwallet/wallet_ledger/internal/models"
	"github.com/finwallet/wallet_ledger/internal/utils/fixedpoint"
)

// ToModelTransaction converts a domain journal record to its db representation.
func ToModelTransaction(d domain.TransactionRecord) models.Transaction {
	m := models.Transaction{
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		Type:          string(d.Type),
		Amount:        d.Amount.Decimal(),
		Status:        string(d.Status),
		Timestamp:     d.Timestamp,
		Details:       d.Details,
		BalanceAfter:  d.BalanceAfter.Decimal(),
		AuditFields:   toModelAudit(d.AuditFields),
	}
	if d.WithdrawalID != "" {
		m.WithdrawalID = &d.WithdrawalID
	}
	if d.OriginalTransactionID != "" {
		m.OriginalTransactionID = &d.OriginalTransactionID
	}
	return m
}

// ToDomainTransaction converts a db journal row to the domain representation.
func ToDomainTransaction(m models.Transaction) domain.TransactionRecord {
	d := domain.TransactionRecord{
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		Type:          domain.TransactionType(m.Type),
		Amount:        fixedpoint.FromDecimal(m.Amount),
		Status:        domain.TransactionStatus(m.Status),
		Timestamp:     m.Timestamp,
		Details:       m.Details,
		BalanceAfter:  fixedpoint.FromDecimal(m.BalanceAfter),
		AuditFields:   toDomainAudit(m.AuditFields),
	}
	if m.WithdrawalID != nil {
		d.WithdrawalID = *m.WithdrawalID
	}
	if m.OriginalTransactionID != nil {
		d.OriginalTransactionID = *m.OriginalTransactionID
	}
	return d
}

// ToDomainTransactionSlice converts a slice of db journal rows.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.TransactionRecord {
	out := make([]domain.TransactionRecord, len(ms))
	for i, m := range ms {
		out[i] = ToDomainTransaction(m)
	}
	return out
}
