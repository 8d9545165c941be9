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

package database

import (
	"context"
	"time"

	"github.com/dukahq/dukarecon/model"
)

// IDataSource defines the interface for data source operations, grouping related functionalities.
type IDataSource interface {
	ledger  // Interface for ledger-entry operations
	payment // Interface for recorded-payment operations
	expense // Interface for expense operations
}

// ledger defines methods for handling received-money ledger entries.
type ledger interface {
	UpsertLedgerEntry(ctx context.Context, entry *model.LedgerEntry) (*model.LedgerEntry, error)                      // Inserts or refreshes an entry, preserving its status
	GetLedgerEntry(ctx context.Context, tenantID, referenceCode string) (*model.LedgerEntry, error)                   // Retrieves an entry by tenant and reference code
	GetLedgerEntryByID(ctx context.Context, entryID string) (*model.LedgerEntry, error)                               // Retrieves an entry by its ID
	UpdateLedgerEntryStatus(ctx context.Context, entryID string, status model.LedgerStatus) error                     // Moves an unmatched entry to matched or dismissed
	GetLedgerEntriesForPeriod(ctx context.Context, tenantID string, from, to time.Time) ([]*model.LedgerEntry, error) // Retrieves entries received inside a time window
}

// payment defines methods for handling attendant-recorded payments.
type payment interface {
	RecordPayment(ctx context.Context, pay *model.RecordedPayment) (*model.RecordedPayment, error)                       // Records a new payment
	GetPayment(ctx context.Context, paymentID string) (*model.RecordedPayment, error)                                    // Retrieves a payment by ID
	GetPaymentsByReferenceCode(ctx context.Context, tenantID, referenceCode string) ([]*model.RecordedPayment, error)    // Retrieves payments claiming a reference code
	MarkPaymentVerified(ctx context.Context, paymentID string, verifiedAt time.Time) error                               // Flags a payment as proven by a money event
	GetPaymentsForPeriod(ctx context.Context, tenantID string, from, to time.Time) ([]*model.RecordedPayment, error)     // Retrieves payments created inside a time window
}

// expense defines methods for handling outgoing-money expenses.
type expense interface {
	RecordExpense(ctx context.Context, exp *model.Expense) (*model.Expense, error)                      // Records a new expense
	GetExpensesForPeriod(ctx context.Context, tenantID string, from, to time.Time) ([]*model.Expense, error) // Retrieves expenses created inside a time window
}
