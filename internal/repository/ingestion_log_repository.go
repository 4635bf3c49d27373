package repository

import (
	"context"
	"fmt"

	"github.com/midwestpm/reportingest/internal/domain"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ingestionLogRepository struct {
	pool *pgxpool.Pool
}

// NewIngestionLogRepository wires a repository backed by pgxpool.
func NewIngestionLogRepository(pool *pgxpool.Pool) IngestionLogRepository {
	return &ingestionLogRepository{pool: pool}
}

func (r *ingestionLogRepository) Record(ctx context.Context, entry domain.IngestionLogEntry) error {
	if r.pool == nil {
		return fmt.Errorf("ingestion log repository not initialized")
	}

	var batchIndex any
	if entry.BatchIndex != nil {
		batchIndex = *entry.BatchIndex
	}

	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO ingestion_logs (report_kind, file_name, batch_index, error_message)
		 VALUES ($1, $2, $3, $4)`,
		string(entry.ReportKind),
		entry.FileName,
		batchIndex,
		entry.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to record ingestion log: %w", err)
	}

	return nil
}

func (r *ingestionLogRepository) List(ctx context.Context, kind domain.ReportKind, fileName string, limit int, offset int) ([]domain.IngestionLogEntry, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("ingestion log repository not initialized")
	}

	if limit <= 0 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, report_kind, file_name, batch_index, error_message, created_at
		 FROM ingestion_logs
		 WHERE report_kind = $1
		   AND file_name = $2
		 ORDER BY created_at DESC
		 LIMIT $3 OFFSET $4`,
		string(kind),
		fileName,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingestion logs: %w", err)
	}
	defer rows.Close()

	logs := []domain.IngestionLogEntry{}
	for rows.Next() {
		var (
			entry      domain.IngestionLogEntry
			reportKind string
			batchIndex pgtype.Int4
			createdAt  pgtype.Timestamptz
		)
		if scanErr := rows.Scan(
			&entry.ID,
			&reportKind,
			&entry.FileName,
			&batchIndex,
			&entry.ErrorMessage,
			&createdAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan ingestion log: %w", scanErr)
		}

		entry.ReportKind = domain.ReportKind(reportKind)
		if batchIndex.Valid {
			value := int(batchIndex.Int32)
			entry.BatchIndex = &value
		}
		if createdAt.Valid {
			entry.CreatedAt = createdAt.Time
		}

		logs = append(logs, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate ingestion logs: %w", rowsErr)
	}

	return logs, nil
}
