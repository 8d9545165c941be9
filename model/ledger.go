/*
Copyright 2025 DukaRecon Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerStatus tracks whether a received-money notification has been linked to
// a recorded sale payment. Status only moves forward: once matched or
// dismissed, redelivery of the same notification must not reset it.
type LedgerStatus string

const (
	StatusUnmatched LedgerStatus = "unmatched"
	StatusMatched   LedgerStatus = "matched"
	StatusDismissed LedgerStatus = "dismissed"
)

// LedgerEntry is the durable record of one received-money notification,
// unique per (tenant_id, reference_code).
type LedgerEntry struct {
	ID            int64           `json:"-"`
	EntryID       string          `json:"entry_id"`
	TenantID      string          `json:"tenant_id"`
	SubmitterID   string          `json:"submitter_id"`
	ReferenceCode string          `json:"reference_code"`
	Amount        decimal.Decimal `json:"amount"`
	Counterparty  string          `json:"counterparty"`
	Channel       Channel         `json:"channel"`
	RawText       string          `json:"raw_text"`
	SourceLabel   string          `json:"source_label"`
	Status        LedgerStatus    `json:"status"`
	ReceivedAt    time.Time       `json:"received_at"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToMoneyEvent converts a ledger entry back to the event form the
// reconciliation engine consumes.
func (e *LedgerEntry) ToMoneyEvent() MoneyEvent {
	return MoneyEvent{
		ReferenceCode: e.ReferenceCode,
		Amount:        e.Amount,
		Counterparty:  e.Counterparty,
		Channel:       e.Channel,
		RawText:       e.RawText,
		SourceLabel:   e.SourceLabel,
		ReceivedAt:    e.ReceivedAt,
	}
}
