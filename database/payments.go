package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/dukahq/dukarecon/internal/apierror"
	"github.com/dukahq/dukarecon/model"
)

func (d Datasource) RecordPayment(ctx context.Context, pay *model.RecordedPayment) (*model.RecordedPayment, error) {
	ctx, span := otel.Tracer("payment.database").Start(ctx, "Saving payment to db")
	defer span.End()

	pay.PaymentID = model.GenerateUUIDWithSuffix("pay")
	pay.CreatedAt = time.Now()

	_, err := d.Conn.ExecContext(ctx, `
		INSERT INTO payments (payment_id, tenant_id, attendant_id, attendant_name, amount, payment_method, reference_code, is_verified, verified_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, pay.PaymentID, pay.TenantID, pay.AttendantID, pay.AttendantName, pay.Amount, pay.PaymentMethod, pay.ReferenceCode, pay.IsVerified, pay.VerifiedAt, pay.CreatedAt)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to record payment", err)
	}

	return pay, nil
}

func (d Datasource) GetPayment(ctx context.Context, paymentID string) (*model.RecordedPayment, error) {
	pay := model.RecordedPayment{}

	row := d.Conn.QueryRowContext(ctx, `
		SELECT payment_id, tenant_id, attendant_id, attendant_name, amount, payment_method, reference_code, is_verified, verified_at, created_at
		FROM payments
		WHERE payment_id = $1
	`, paymentID)

	err := row.Scan(&pay.PaymentID, &pay.TenantID, &pay.AttendantID, &pay.AttendantName, &pay.Amount, &pay.PaymentMethod, &pay.ReferenceCode, &pay.IsVerified, &pay.VerifiedAt, &pay.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Payment with ID '%s' not found", paymentID), err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve payment", err)
	}

	return &pay, nil
}

// GetPaymentsByReferenceCode returns every payment in the tenant claiming the
// reference code. More than one row is possible when attendants double-enter a
// sale; the auto-matcher verifies all of them.
func (d Datasource) GetPaymentsByReferenceCode(ctx context.Context, tenantID, referenceCode string) ([]*model.RecordedPayment, error) {
	ctx, span := otel.Tracer("payment.database").Start(ctx, "Fetching payments by reference code")
	defer span.End()

	rows, err := d.Conn.QueryContext(ctx, `
		SELECT payment_id, tenant_id, attendant_id, attendant_name, amount, payment_method, reference_code, is_verified, verified_at, created_at
		FROM payments
		WHERE tenant_id = $1 AND reference_code = $2
	`, tenantID, referenceCode)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve payments", err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

func (d Datasource) MarkPaymentVerified(ctx context.Context, paymentID string, verifiedAt time.Time) error {
	ctx, span := otel.Tracer("payment.database").Start(ctx, "Marking payment verified")
	defer span.End()

	result, err := d.Conn.ExecContext(ctx, `
		UPDATE payments
		SET is_verified = TRUE, verified_at = $2
		WHERE payment_id = $1
	`, paymentID, verifiedAt)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to mark payment verified", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to read rows affected", err)
	}
	if rowsAffected == 0 {
		return apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Payment with ID '%s' not found", paymentID), nil)
	}

	return nil
}

func (d Datasource) GetPaymentsForPeriod(ctx context.Context, tenantID string, from, to time.Time) ([]*model.RecordedPayment, error) {
	ctx, span := otel.Tracer("payment.database").Start(ctx, "Fetching payments for period")
	defer span.End()

	rows, err := d.Conn.QueryContext(ctx, `
		SELECT payment_id, tenant_id, attendant_id, attendant_name, amount, payment_method, reference_code, is_verified, verified_at, created_at
		FROM payments
		WHERE tenant_id = $1 AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at ASC
	`, tenantID, from, to)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve payments", err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

func scanPayments(rows *sql.Rows) ([]*model.RecordedPayment, error) {
	payments := []*model.RecordedPayment{}

	for rows.Next() {
		pay := model.RecordedPayment{}
		err := rows.Scan(&pay.PaymentID, &pay.TenantID, &pay.AttendantID, &pay.AttendantName, &pay.Amount, &pay.PaymentMethod, &pay.ReferenceCode, &pay.IsVerified, &pay.VerifiedAt, &pay.CreatedAt)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan payment data", err)
		}
		payments = append(payments, &pay)
	}

	if err := rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over payments", err)
	}

	return payments, nil
}
