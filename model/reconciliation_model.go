package model

import "github.com/shopspring/decimal"

// MatchedPair links one recorded payment to the money event that proves it.
type MatchedPair struct {
	Payment RecordedPayment `json:"payment"`
	Event   MoneyEvent      `json:"event"`
}

// ReconciliationResult partitions a period's payments and money events.
// Every payment lands in exactly one of Matched/UnmatchedPayments and every
// event in exactly one of Matched/UnmatchedMoney.
type ReconciliationResult struct {
	Matched           []MatchedPair     `json:"matched"`
	UnmatchedPayments []RecordedPayment `json:"unmatched_payments"`
	UnmatchedMoney    []MoneyEvent      `json:"unmatched_money"`
}

// ShiftSummary is the derived end-of-shift report. MissingAmount is the money
// the attendant recorded but could not evidence; ExtraMoneyCount counts money
// that arrived without a recorded sale.
type ShiftSummary struct {
	TotalExpected      decimal.Decimal `json:"total_expected"`
	TotalMatched       decimal.Decimal `json:"total_matched"`
	MissingAmount      decimal.Decimal `json:"missing_amount"`
	MissingCount       int             `json:"missing_count"`
	ExtraMoneyCount    int             `json:"extra_money_count"`
	LowConfidenceCount int             `json:"low_confidence_count"`
}
