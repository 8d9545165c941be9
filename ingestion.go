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
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"github.com/wacul/ptr"

	"github.com/dukahq/dukarecon/config"
	"github.com/dukahq/dukarecon/internal/apierror"
	"github.com/dukahq/dukarecon/internal/notification"
	"github.com/dukahq/dukarecon/model"
	"github.com/dukahq/dukarecon/parser"
)

// ProcessNotification parses one forwarded message and records the outcome.
// Income confirmations become ledger entries and are auto-matched against
// recorded payments; outgoing-money confirmations become expenses. Anything
// else is dropped silently, non-financial texts vastly outnumber financial
// ones.
func (l *Recon) ProcessNotification(ctx context.Context, payload *NotificationPayload) (*model.LedgerEntry, error) {
	ctx, span := tracer.Start(ctx, "Processing notification")
	defer span.End()

	event := parser.Parse(payload.Body, payload.SenderLabel)
	if event == nil {
		if expense := parser.ParseExpense(payload.Body); expense != nil {
			return nil, l.recordExpenseEvent(ctx, payload.TenantID, expense)
		}
		return nil, nil
	}
	if !payload.ReceivedAt.IsZero() {
		event.ReceivedAt = payload.ReceivedAt
	}
	if err := event.Validate(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "Parsed event failed validation", err)
	}

	entry := &model.LedgerEntry{
		TenantID:      payload.TenantID,
		SubmitterID:   payload.SubmitterID,
		ReferenceCode: event.ReferenceCode,
		Amount:        event.Amount,
		Counterparty:  event.Counterparty,
		Channel:       event.Channel,
		RawText:       event.RawText,
		SourceLabel:   event.SourceLabel,
		ReceivedAt:    event.ReceivedAt,
	}

	stored, err := l.upsertWithRetry(ctx, entry)
	if err != nil {
		notification.NotifyError(err)
		return nil, err
	}

	// A failed auto-match never rolls back ingestion. The entry stays
	// unmatched and batch reconciliation surfaces it later.
	if err := l.autoMatchPayments(ctx, stored); err != nil {
		logrus.Warnf("auto-match failed for %s: %v", stored.ReferenceCode, err)
	}

	return stored, nil
}

// upsertWithRetry writes the ledger entry, retrying transient storage
// failures with exponential backoff before giving up.
func (l *Recon) upsertWithRetry(ctx context.Context, entry *model.LedgerEntry) (*model.LedgerEntry, error) {
	cfg, err := config.Fetch()
	if err != nil {
		return nil, err
	}

	var stored *model.LedgerEntry
	operation := func() error {
		var opErr error
		stored, opErr = l.datasource.UpsertLedgerEntry(ctx, entry)
		return opErr
	}

	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(cfg.Queue.MaxRetryAttempts))
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return stored, nil
}

// autoMatchPayments looks for recorded payments claiming the entry's
// reference code. Every claiming payment is verified, not just the first,
// double-entered sales must not leave one copy unproven.
func (l *Recon) autoMatchPayments(ctx context.Context, entry *model.LedgerEntry) error {
	ctx, span := tracer.Start(ctx, "Auto-matching payments")
	defer span.End()

	if entry.Status != model.StatusUnmatched {
		return nil
	}

	payments, err := l.datasource.GetPaymentsByReferenceCode(ctx, entry.TenantID, entry.ReferenceCode)
	if err != nil {
		return err
	}
	if len(payments) == 0 {
		return nil
	}

	now := time.Now()
	for _, pay := range payments {
		if pay.IsVerified {
			continue
		}
		if err := l.datasource.MarkPaymentVerified(ctx, pay.PaymentID, now); err != nil {
			return err
		}
		pay.IsVerified = true
		pay.VerifiedAt = ptr.Time(now)
	}

	if err := l.datasource.UpdateLedgerEntryStatus(ctx, entry.EntryID, model.StatusMatched); err != nil {
		return err
	}
	entry.Status = model.StatusMatched
	return nil
}

// RecordPayment stores an attendant-entered sale payment and immediately
// checks the ledger for a money event that already carries its reference
// code, covering the case where the confirmation arrived before the sale was
// entered.
func (l *Recon) RecordPayment(ctx context.Context, pay *model.RecordedPayment) (*model.RecordedPayment, error) {
	ctx, span := tracer.Start(ctx, "Recording payment")
	defer span.End()

	if pay.PaymentMethod == model.MethodCash && pay.ReferenceCode == "" {
		pay.ReferenceCode = model.CashReference
	}
	if pay.PaymentMethod != model.MethodCash && !model.IsValidReferenceCode(pay.ReferenceCode) {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "Reference code must be a 10-character alphanumeric token", nil)
	}
	if !pay.Amount.IsPositive() {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "Amount must be positive", nil)
	}

	recorded, err := l.datasource.RecordPayment(ctx, pay)
	if err != nil {
		return nil, err
	}

	if recorded.PaymentMethod != model.MethodCash {
		if err := l.matchAgainstLedger(ctx, recorded); err != nil {
			logrus.Warnf("ledger match failed for %s: %v", recorded.ReferenceCode, err)
		}
	}

	return recorded, nil
}

// matchAgainstLedger verifies a freshly recorded payment when its proof is
// already in the ledger.
func (l *Recon) matchAgainstLedger(ctx context.Context, pay *model.RecordedPayment) error {
	entry, err := l.datasource.GetLedgerEntry(ctx, pay.TenantID, pay.ReferenceCode)
	if err != nil {
		apiErr, ok := err.(apierror.APIError)
		if ok && apiErr.Code == apierror.ErrNotFound {
			// The confirmation may still arrive. Ingestion will match it then.
			return nil
		}
		return err
	}
	if entry.Status == model.StatusDismissed {
		return nil
	}

	now := time.Now()
	if err := l.datasource.MarkPaymentVerified(ctx, pay.PaymentID, now); err != nil {
		return err
	}
	pay.IsVerified = true
	pay.VerifiedAt = ptr.Time(now)

	if entry.Status == model.StatusUnmatched {
		return l.datasource.UpdateLedgerEntryStatus(ctx, entry.EntryID, model.StatusMatched)
	}
	return nil
}

// EnqueueNotification pushes a raw forwarded message onto the queue for the
// workers to parse and ingest.
func (l *Recon) EnqueueNotification(ctx context.Context, payload *NotificationPayload) error {
	return l.queue.Enqueue(ctx, payload)
}

// GetLedgerEntryByID fetches one ledger entry.
func (l *Recon) GetLedgerEntryByID(ctx context.Context, entryID string) (*model.LedgerEntry, error) {
	return l.datasource.GetLedgerEntryByID(ctx, entryID)
}

// GetPaymentByID fetches one recorded payment.
func (l *Recon) GetPaymentByID(ctx context.Context, paymentID string) (*model.RecordedPayment, error) {
	return l.datasource.GetPayment(ctx, paymentID)
}

// GetExpenses lists a tenant's recorded expenses inside a time window.
func (l *Recon) GetExpenses(ctx context.Context, tenantID string, from, to time.Time) ([]*model.Expense, error) {
	return l.datasource.GetExpensesForPeriod(ctx, tenantID, from, to)
}

// DismissLedgerEntry marks a received-money entry as not expecting a sale,
// owner top-ups and personal transfers land here.
func (l *Recon) DismissLedgerEntry(ctx context.Context, entryID string) error {
	ctx, span := tracer.Start(ctx, "Dismissing ledger entry")
	defer span.End()

	return l.datasource.UpdateLedgerEntryStatus(ctx, entryID, model.StatusDismissed)
}

// RecordExpense stores an outgoing-money confirmation submitted directly by
// the expense-recording flow.
func (l *Recon) RecordExpense(ctx context.Context, tenantID, body string) (*model.Expense, error) {
	ctx, span := tracer.Start(ctx, "Recording expense")
	defer span.End()

	event := parser.ParseExpense(body)
	if event == nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "Text is not an outgoing-money confirmation", nil)
	}

	expense := &model.Expense{
		TenantID:      tenantID,
		ReferenceCode: event.ReferenceCode,
		Amount:        event.Amount,
		Description:   event.Description,
	}
	stored, err := l.datasource.RecordExpense(ctx, expense)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (l *Recon) recordExpenseEvent(ctx context.Context, tenantID string, event *model.ExpenseEvent) error {
	_, err := l.datasource.RecordExpense(ctx, &model.Expense{
		TenantID:      tenantID,
		ReferenceCode: event.ReferenceCode,
		Amount:        event.Amount,
		Description:   event.Description,
	})
	if err != nil {
		apiErr, ok := err.(apierror.APIError)
		if ok && apiErr.Code == apierror.ErrConflict {
			// Redelivery of an expense already on file.
			return nil
		}
		return err
	}
	return nil
}
