package database

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/dukahq/dukarecon/internal/apierror"
	"github.com/dukahq/dukarecon/model"
	"github.com/lib/pq"
)

func (d Datasource) RecordExpense(ctx context.Context, exp *model.Expense) (*model.Expense, error) {
	ctx, span := otel.Tracer("expense.database").Start(ctx, "Saving expense to db")
	defer span.End()

	exp.ExpenseID = model.GenerateUUIDWithSuffix("exp")
	exp.CreatedAt = time.Now()

	_, err := d.Conn.ExecContext(ctx, `
		INSERT INTO expenses (expense_id, tenant_id, reference_code, amount, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, exp.ExpenseID, exp.TenantID, exp.ReferenceCode, exp.Amount, exp.Description, exp.CreatedAt)
	if err != nil {
		pqErr, ok := err.(*pq.Error)
		if ok && pqErr.Code.Name() == "unique_violation" {
			return nil, apierror.NewAPIError(apierror.ErrConflict, "Expense with this reference code already exists", err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to record expense", err)
	}

	return exp, nil
}

func (d Datasource) GetExpensesForPeriod(ctx context.Context, tenantID string, from, to time.Time) ([]*model.Expense, error) {
	ctx, span := otel.Tracer("expense.database").Start(ctx, "Fetching expenses for period")
	defer span.End()

	rows, err := d.Conn.QueryContext(ctx, `
		SELECT expense_id, tenant_id, reference_code, amount, description, created_at
		FROM expenses
		WHERE tenant_id = $1 AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at ASC
	`, tenantID, from, to)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve expenses", err)
	}
	defer rows.Close()

	expenses := []*model.Expense{}

	for rows.Next() {
		exp := model.Expense{}
		err = rows.Scan(&exp.ExpenseID, &exp.TenantID, &exp.ReferenceCode, &exp.Amount, &exp.Description, &exp.CreatedAt)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan expense data", err)
		}
		expenses = append(expenses, &exp)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over expenses", err)
	}

	return expenses, nil
}
