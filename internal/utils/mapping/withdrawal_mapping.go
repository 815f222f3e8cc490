package mapping

import (
	"github.com/finwallet/wallet_ledger/internal/core/domain"
	"github.com/finwallet/wallet_ledger/internal/models"
	"github.com/finwallet/wallet_ledger/internal/utils/fixedpoint"
)

// ToModelWithdrawal converts a domain withdrawal to its db representation.
func ToModelWithdrawal(d domain.Withdrawal) models.Withdrawal {
	return models.Withdrawal{
		WithdrawalID:         d.WithdrawalID,
		AccountID:            d.AccountID,
		GrossAmount:          d.GrossAmount.Decimal(),
		Fee:                  d.Fee.Decimal(),
		NetAmount:            d.NetAmount.Decimal(),
		Destination:          d.Destination,
		Method:               string(d.Method),
		LocalAmount:          d.LocalAmount.Decimal(),
		ExchangeRateSnapshot: d.ExchangeRateSnapshot.Decimal(),
		LocalCurrencyCode:    d.LocalCurrencyCode,
		Status:               string(d.Status),
		DebitTransactionID:   d.DebitTransactionID,
		RejectionReason:      d.RejectionReason,
		AuditFields:          toModelAudit(d.AuditFields),
	}
}

// ToDomainWithdrawal converts a db withdrawal row to the domain representation.
func ToDomainWithdrawal(m models.Withdrawal) domain.Withdrawal {
	return domain.Withdrawal{
		WithdrawalID:         m.WithdrawalID,
		AccountID:            m.AccountID,
		GrossAmount:          fixedpoint.FromDecimal(m.GrossAmount),
		Fee:                  fixedpoint.FromDecimal(m.Fee),
		NetAmount:            fixedpoint.FromDecimal(m.NetAmount),
		Destination:          m.Destination,
		Method:               domain.WithdrawalMethod(m.Method),
		LocalAmount:          fixedpoint.FromDecimal(m.LocalAmount),
		ExchangeRateSnapshot: fixedpoint.FromDecimal(m.ExchangeRateSnapshot),
		LocalCurrencyCode:    m.LocalCurrencyCode,
		Status:               domain.WithdrawalStatus(m.Status),
		DebitTransactionID:   m.DebitTransactionID,
		RejectionReason:      m.RejectionReason,
		AuditFields:          toDomainAudit(m.AuditFields),
	}
}
