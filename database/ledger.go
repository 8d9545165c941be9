package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/dukahq/dukarecon/internal/apierror"
	"github.com/dukahq/dukarecon/model"
	"github.com/lib/pq"
)

// UpsertLedgerEntry persists a received-money event. Non-status fields are
// refreshed on redelivery; status is written only when the row does not exist
// yet, so a matched or dismissed entry never reverts to unmatched.
func (d Datasource) UpsertLedgerEntry(ctx context.Context, entry *model.LedgerEntry) (*model.LedgerEntry, error) {
	ctx, span := otel.Tracer("ledger.database").Start(ctx, "Upserting ledger entry")
	defer span.End()

	result, err := d.Conn.ExecContext(ctx, `
		UPDATE ledger_entries
		SET submitter_id = $3, amount = $4, counterparty = $5, channel = $6, raw_text = $7, source_label = $8, received_at = $9
		WHERE tenant_id = $1 AND reference_code = $2
	`, entry.TenantID, entry.ReferenceCode, entry.SubmitterID, entry.Amount, entry.Counterparty, entry.Channel, entry.RawText, entry.SourceLabel, entry.ReceivedAt)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to refresh ledger entry", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to read rows affected", err)
	}

	if rowsAffected == 0 {
		entry.EntryID = model.GenerateUUIDWithSuffix("evt")
		entry.Status = model.StatusUnmatched
		entry.CreatedAt = time.Now()

		_, err = d.Conn.ExecContext(ctx, `
			INSERT INTO ledger_entries (entry_id, tenant_id, submitter_id, reference_code, amount, counterparty, channel, raw_text, source_label, status, received_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`, entry.EntryID, entry.TenantID, entry.SubmitterID, entry.ReferenceCode, entry.Amount, entry.Counterparty, entry.Channel, entry.RawText, entry.SourceLabel, entry.Status, entry.ReceivedAt, entry.CreatedAt)
		if err != nil {
			pqErr, ok := err.(*pq.Error)
			if ok && pqErr.Code.Name() == "unique_violation" {
				// A concurrent delivery inserted the row first. The stored
				// entry is authoritative.
				return d.GetLedgerEntry(ctx, entry.TenantID, entry.ReferenceCode)
			}
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to insert ledger entry", err)
		}
		return entry, nil
	}

	return d.GetLedgerEntry(ctx, entry.TenantID, entry.ReferenceCode)
}

func (d Datasource) GetLedgerEntry(ctx context.Context, tenantID, referenceCode string) (*model.LedgerEntry, error) {
	entry := model.LedgerEntry{}

	row := d.Conn.QueryRowContext(ctx, `
		SELECT entry_id, tenant_id, submitter_id, reference_code, amount, counterparty, channel, raw_text, source_label, status, received_at, created_at
		FROM ledger_entries
		WHERE tenant_id = $1 AND reference_code = $2
	`, tenantID, referenceCode)

	err := row.Scan(&entry.EntryID, &entry.TenantID, &entry.SubmitterID, &entry.ReferenceCode, &entry.Amount, &entry.Counterparty, &entry.Channel, &entry.RawText, &entry.SourceLabel, &entry.Status, &entry.ReceivedAt, &entry.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Ledger entry with reference '%s' not found", referenceCode), err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve ledger entry", err)
	}

	return &entry, nil
}

func (d Datasource) GetLedgerEntryByID(ctx context.Context, entryID string) (*model.LedgerEntry, error) {
	entry := model.LedgerEntry{}

	row := d.Conn.QueryRowContext(ctx, `
		SELECT entry_id, tenant_id, submitter_id, reference_code, amount, counterparty, channel, raw_text, source_label, status, received_at, created_at
		FROM ledger_entries
		WHERE entry_id = $1
	`, entryID)

	err := row.Scan(&entry.EntryID, &entry.TenantID, &entry.SubmitterID, &entry.ReferenceCode, &entry.Amount, &entry.Counterparty, &entry.Channel, &entry.RawText, &entry.SourceLabel, &entry.Status, &entry.ReceivedAt, &entry.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, fmt.Sprintf("Ledger entry with ID '%s' not found", entryID), err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve ledger entry", err)
	}

	return &entry, nil
}

// UpdateLedgerEntryStatus moves an unmatched entry to matched or dismissed.
// Updating an entry that already carries the requested status is a no-op;
// moving between two final statuses is a conflict.
func (d Datasource) UpdateLedgerEntryStatus(ctx context.Context, entryID string, status model.LedgerStatus) error {
	ctx, span := otel.Tracer("ledger.database").Start(ctx, "Updating ledger entry status")
	defer span.End()

	result, err := d.Conn.ExecContext(ctx, `
		UPDATE ledger_entries
		SET status = $2
		WHERE entry_id = $1 AND status = 'unmatched'
	`, entryID, status)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update ledger entry status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to read rows affected", err)
	}

	if rowsAffected == 0 {
		entry, err := d.GetLedgerEntryByID(ctx, entryID)
		if err != nil {
			return err
		}
		if entry.Status == status {
			return nil
		}
		return apierror.NewAPIError(apierror.ErrConflict, fmt.Sprintf("Ledger entry is already %s", entry.Status), nil)
	}

	return nil
}

func (d Datasource) GetLedgerEntriesForPeriod(ctx context.Context, tenantID string, from, to time.Time) ([]*model.LedgerEntry, error) {
	ctx, span := otel.Tracer("ledger.database").Start(ctx, "Fetching ledger entries for period")
	defer span.End()

	rows, err := d.Conn.QueryContext(ctx, `
		SELECT entry_id, tenant_id, submitter_id, reference_code, amount, counterparty, channel, raw_text, source_label, status, received_at, created_at
		FROM ledger_entries
		WHERE tenant_id = $1 AND received_at >= $2 AND received_at <= $3
		ORDER BY received_at ASC
	`, tenantID, from, to)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve ledger entries", err)
	}
	defer rows.Close()

	entries := []*model.LedgerEntry{}

	for rows.Next() {
		entry := model.LedgerEntry{}
		err = rows.Scan(&entry.EntryID, &entry.TenantID, &entry.SubmitterID, &entry.ReferenceCode, &entry.Amount, &entry.Counterparty, &entry.Channel, &entry.RawText, &entry.SourceLabel, &entry.Status, &entry.ReceivedAt, &entry.CreatedAt)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan ledger entry data", err)
		}
		entries = append(entries, &entry)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over ledger entries", err)
	}

	return entries, nil
}
