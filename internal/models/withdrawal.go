package models

import (
	"github.com/shopspring/decimal"
)

// Withdrawal is the withdrawals table row.
type Withdrawal struct {
	WithdrawalID         string          `db:"withdrawal_id"`
	AccountID            string          `db:"account_id"`
	GrossAmount          decimal.Decimal `db:"gross_amount"`
	Fee                  decimal.Decimal `db:"fee"`
	NetAmount            decimal.Decimal `db:"net_amount"`
	Destination          string          `db:"destination"`
	Method               string          `db:"method"`
	LocalAmount          decimal.Decimal `db:"local_amount"`
	ExchangeRateSnapshot decimal.Decimal `db:"exchange_rate_snapshot"`
	LocalCurrencyCode    string          `db:"local_currency_code"`
	Status               string          `db:"status"`
	DebitTransactionID   string          `db:"debit_transaction_id"`
	RejectionReason      string          `db:"rejection_reason"`
	AuditFields
}
