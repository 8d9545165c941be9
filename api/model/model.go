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
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dukahq/dukarecon"
	"github.com/dukahq/dukarecon/model"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// RecordNotification is a raw device-forwarded message.
type RecordNotification struct {
	TenantID    string    `json:"tenant_id"`
	SubmitterID string    `json:"submitter_id"`
	Body        string    `json:"body"`
	SenderLabel string    `json:"sender_label"`
	ReceivedAt  time.Time `json:"received_at"`
}

func (n *RecordNotification) ValidateRecordNotification() error {
	return validation.ValidateStruct(n,
		validation.Field(&n.TenantID, validation.Required),
		validation.Field(&n.Body, validation.Required),
	)
}

func (n *RecordNotification) ToNotificationPayload() *dukarecon.NotificationPayload {
	return &dukarecon.NotificationPayload{
		TenantID:    n.TenantID,
		SubmitterID: n.SubmitterID,
		Body:        n.Body,
		SenderLabel: n.SenderLabel,
		ReceivedAt:  n.ReceivedAt,
	}
}

// RecordPayment is an attendant-entered sale payment.
type RecordPayment struct {
	TenantID      string          `json:"tenant_id"`
	AttendantID   string          `json:"attendant_id"`
	AttendantName string          `json:"attendant_name"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	ReferenceCode string          `json:"reference_code"`
}

func (p *RecordPayment) ValidateRecordPayment() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.TenantID, validation.Required),
		validation.Field(&p.AttendantID, validation.Required),
		validation.Field(&p.PaymentMethod, validation.Required, validation.In("cash", "mobile-money", "bank")),
		validation.Field(&p.Amount, validation.By(positiveAmount)),
	)
}

func positiveAmount(value interface{}) error {
	amount, ok := value.(decimal.Decimal)
	if !ok || !amount.IsPositive() {
		return errors.New("amount must be a positive decimal")
	}
	return nil
}

func (p *RecordPayment) ToRecordedPayment() *model.RecordedPayment {
	return &model.RecordedPayment{
		TenantID:      p.TenantID,
		AttendantID:   p.AttendantID,
		AttendantName: p.AttendantName,
		Amount:        p.Amount,
		PaymentMethod: model.PaymentMethod(p.PaymentMethod),
		ReferenceCode: p.ReferenceCode,
	}
}

// RecordExpense is an outgoing-money confirmation pasted in by the owner.
type RecordExpense struct {
	TenantID string `json:"tenant_id"`
	Body     string `json:"body"`
}

func (e *RecordExpense) ValidateRecordExpense() error {
	return validation.ValidateStruct(e,
		validation.Field(&e.TenantID, validation.Required),
		validation.Field(&e.Body, validation.Required),
	)
}
