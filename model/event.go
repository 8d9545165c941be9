package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Channel is the settlement rail a money event arrived on. ChannelGeneric
// marks events recovered by the fallback parser; they carry lower confidence
// than the format-specific channels.
type Channel string

const (
	ChannelMobileMoney Channel = "mobile-money"
	ChannelBank        Channel = "bank"
	ChannelGeneric     Channel = "generic"
)

// MoneyEvent is one received-money notification in structured form. It is
// ephemeral: the parser produces it, ingestion persists it as a LedgerEntry.
type MoneyEvent struct {
	ReferenceCode string          `json:"reference_code"`
	Amount        decimal.Decimal `json:"amount"`
	Counterparty  string          `json:"counterparty"`
	Channel       Channel         `json:"channel"`
	RawText       string          `json:"raw_text"`
	SourceLabel   string          `json:"source_label"`
	ReceivedAt    time.Time       `json:"received_at"`
}

// ExpenseEvent is an outgoing-money confirmation in structured form. There is
// no counterparty field: the money left, the description says where to.
type ExpenseEvent struct {
	ReferenceCode string          `json:"reference_code"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	RawText       string          `json:"raw_text"`
	ReceivedAt    time.Time       `json:"received_at"`
}
