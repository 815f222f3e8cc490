package mapping

import (
	"github.com/finwallet/wallet_ledger/internal/core/domain"
	"github.com/finwallet/wallet_ledger/internal/models"
	"github.com/finwallet/wallet_ledger/internal/utils/fixedpoint"
)

// ToModelAccount converts a domain account to its db representation.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		Balance:        d.Balance.Decimal(),
		PendingBalance: d.PendingBalance.Decimal(),
		CurrencyCode:   d.CurrencyCode,
		AllowNegative:  d.AllowNegative,
		AuditFields:    toModelAudit(d.AuditFields),
	}
}

// ToDomainAccount converts a db account row to the domain representation.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		Balance:        fixedpoint.FromDecimal(m.Balance),
		PendingBalance: fixedpoint.FromDecimal(m.PendingBalance),
		CurrencyCode:   m.CurrencyCode,
		AllowNegative:  m.AllowNegative,
		AuditFields:    toDomainAudit(m.AuditFields),
	}
}

func toModelAudit(a domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

func toDomainAudit(a models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}
