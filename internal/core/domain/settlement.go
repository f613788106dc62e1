package domain

import "github.com/shopspring/decimal"

// SettlementResult is produced once per settlement orchestration and
// returned to the caller; it is not retained.
type SettlementResult struct {
	Message         string
	AmountDueBefore decimal.Decimal
	Confirmation    RemoteValue
}
