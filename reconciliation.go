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

package dukarecon

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/dukahq/dukarecon/model"
)

// reconciliationWindow is how far apart a payment and its money event may
// sit and still be treated as the same sale.
const reconciliationWindow = 5 * time.Minute

// Reconcile pairs recorded payments with received-money events. A pair needs
// an exactly equal amount, a channel compatible with the payment method, and
// timestamps within the tolerance window. Assignment is greedy first-match in
// input order; each event is consumed at most once. Shift volumes are small
// enough that optimal bipartite matching buys nothing over auditability.
func Reconcile(payments []model.RecordedPayment, events []model.MoneyEvent) model.ReconciliationResult {
	result := model.ReconciliationResult{
		Matched:           []model.MatchedPair{},
		UnmatchedPayments: []model.RecordedPayment{},
		UnmatchedMoney:    []model.MoneyEvent{},
	}

	consumed := make([]bool, len(events))

	for _, pay := range payments {
		matchIndex := -1
		for i, event := range events {
			if consumed[i] {
				continue
			}
			if !pay.Amount.Equal(event.Amount) {
				continue
			}
			if !event.Channel.MatchesMethod(pay.PaymentMethod) {
				continue
			}
			diff := event.ReceivedAt.Sub(pay.CreatedAt)
			if diff < 0 {
				diff = -diff
			}
			if diff > reconciliationWindow {
				continue
			}
			matchIndex = i
			break
		}

		if matchIndex == -1 {
			result.UnmatchedPayments = append(result.UnmatchedPayments, pay)
			continue
		}
		consumed[matchIndex] = true
		result.Matched = append(result.Matched, model.MatchedPair{Payment: pay, Event: events[matchIndex]})
	}

	for i, event := range events {
		if !consumed[i] {
			result.UnmatchedMoney = append(result.UnmatchedMoney, event)
		}
	}

	return result
}

// Summarize derives the end-of-shift numbers from a reconciliation result.
// Fallback-channel events count as low confidence whether they matched or
// not, their reference codes come from the loosest extractor.
func Summarize(result model.ReconciliationResult) model.ShiftSummary {
	summary := model.ShiftSummary{
		TotalExpected: decimal.Zero,
		TotalMatched:  decimal.Zero,
		MissingAmount: decimal.Zero,
	}

	for _, pair := range result.Matched {
		summary.TotalExpected = summary.TotalExpected.Add(pair.Payment.Amount)
		summary.TotalMatched = summary.TotalMatched.Add(pair.Payment.Amount)
		if pair.Event.Channel == model.ChannelGeneric {
			summary.LowConfidenceCount++
		}
	}
	for _, pay := range result.UnmatchedPayments {
		summary.TotalExpected = summary.TotalExpected.Add(pay.Amount)
	}
	for _, event := range result.UnmatchedMoney {
		if event.Channel == model.ChannelGeneric {
			summary.LowConfidenceCount++
		}
	}

	summary.MissingAmount = summary.TotalExpected.Sub(summary.TotalMatched)
	summary.MissingCount = len(result.UnmatchedPayments)
	summary.ExtraMoneyCount = len(result.UnmatchedMoney)

	return summary
}

// ShiftReport is the reconciliation output handed to the presentation layer.
type ShiftReport struct {
	Result  model.ReconciliationResult `json:"result"`
	Summary model.ShiftSummary         `json:"summary"`
}

// GetShiftReport fetches a consistent snapshot of the period's payments and
// ledger entries and reconciles them. Cash payments sit outside the matching,
// they are settled by drawer count, not by SMS proof. Dismissed entries are
// excluded, the owner already explained that money.
func (l *Recon) GetShiftReport(ctx context.Context, tenantID string, from, to time.Time) (*ShiftReport, error) {
	ctx, span := tracer.Start(ctx, "Building shift report")
	defer span.End()

	cacheKey := fmt.Sprintf("recon:report:%s:%d:%d", tenantID, from.Unix(), to.Unix())
	var cached ShiftReport
	if err := l.cache.Get(ctx, cacheKey, &cached); err == nil && cached.Result.Matched != nil {
		return &cached, nil
	}

	payments, err := l.datasource.GetPaymentsForPeriod(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	entries, err := l.datasource.GetLedgerEntriesForPeriod(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	electronic := make([]model.RecordedPayment, 0, len(payments))
	for _, pay := range payments {
		if pay.PaymentMethod != model.MethodCash {
			electronic = append(electronic, *pay)
		}
	}

	events := make([]model.MoneyEvent, 0, len(entries))
	for _, entry := range entries {
		if entry.Status == model.StatusDismissed {
			continue
		}
		events = append(events, entry.ToMoneyEvent())
	}

	result := Reconcile(electronic, events)
	report := &ShiftReport{Result: result, Summary: Summarize(result)}

	if err := l.cache.Set(ctx, cacheKey, report, 1*time.Minute); err != nil {
		logrus.Warnf("failed to cache shift report: %v", err)
	}

	return report, nil
}
