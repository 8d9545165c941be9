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
package mocks

import (
	"context"
	"time"

	"github.com/dukahq/dukarecon/model"
	"github.com/stretchr/testify/mock"
)

// MockDataSource is a mock implementation of the IDataSource interface
type MockDataSource struct {
	mock.Mock
}

// Ledger methods

func (m *MockDataSource) UpsertLedgerEntry(ctx context.Context, entry *model.LedgerEntry) (*model.LedgerEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LedgerEntry), args.Error(1)
}

func (m *MockDataSource) GetLedgerEntry(ctx context.Context, tenantID, referenceCode string) (*model.LedgerEntry, error) {
	args := m.Called(ctx, tenantID, referenceCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LedgerEntry), args.Error(1)
}

func (m *MockDataSource) GetLedgerEntryByID(ctx context.Context, entryID string) (*model.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LedgerEntry), args.Error(1)
}

func (m *MockDataSource) UpdateLedgerEntryStatus(ctx context.Context, entryID string, status model.LedgerStatus) error {
	args := m.Called(ctx, entryID, status)
	return args.Error(0)
}

func (m *MockDataSource) GetLedgerEntriesForPeriod(ctx context.Context, tenantID string, from, to time.Time) ([]*model.LedgerEntry, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.LedgerEntry), args.Error(1)
}

// Payment methods

func (m *MockDataSource) RecordPayment(ctx context.Context, pay *model.RecordedPayment) (*model.RecordedPayment, error) {
	args := m.Called(ctx, pay)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RecordedPayment), args.Error(1)
}

func (m *MockDataSource) GetPayment(ctx context.Context, paymentID string) (*model.RecordedPayment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RecordedPayment), args.Error(1)
}

func (m *MockDataSource) GetPaymentsByReferenceCode(ctx context.Context, tenantID, referenceCode string) ([]*model.RecordedPayment, error) {
	args := m.Called(ctx, tenantID, referenceCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RecordedPayment), args.Error(1)
}

func (m *MockDataSource) MarkPaymentVerified(ctx context.Context, paymentID string, verifiedAt time.Time) error {
	args := m.Called(ctx, paymentID, verifiedAt)
	return args.Error(0)
}

func (m *MockDataSource) GetPaymentsForPeriod(ctx context.Context, tenantID string, from, to time.Time) ([]*model.RecordedPayment, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RecordedPayment), args.Error(1)
}

// Expense methods

func (m *MockDataSource) RecordExpense(ctx context.Context, exp *model.Expense) (*model.Expense, error) {
	args := m.Called(ctx, exp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Expense), args.Error(1)
}

func (m *MockDataSource) GetExpensesForPeriod(ctx context.Context, tenantID string, from, to time.Time) ([]*model.Expense, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Expense), args.Error(1)
}
