package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"ledgerbook/internal/domain"
	"ledgerbook/internal/port"
)

type exportJobRepo struct {
	db *sqlx.DB
}

// NewExportJobRepo creates a new PostgreSQL-backed ExportJobRepository.
func NewExportJobRepo(db *sqlx.DB) port.ExportJobRepository {
	return &exportJobRepo{db: db}
}

func (r *exportJobRepo) Create(ctx context.Context, job *domain.ExportJob) error {
	job.ID = uuid.New()
	job.CreatedAt = time.Now().UTC()
	if job.Status == "" {
		job.Status = domain.ExportStatusQueued
	}
	if len(job.Filters) == 0 {
		job.Filters = []byte("{}")
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO export_jobs (id, business_id, requested_by, document_type, format, filters, status,
		 notify_email, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		job.ID, job.BusinessID, job.RequestedBy, job.DocumentType, job.Format, []byte(job.Filters),
		job.Status, job.NotifyEmail, job.CreatedAt)
	if err != nil {
		return fmt.Errorf("exportJobRepo.Create: %w", err)
	}
	return nil
}

func (r *exportJobRepo) GetByID(ctx context.Context, businessID, jobID uuid.UUID) (*domain.ExportJob, error) {
	var job domain.ExportJob
	err := r.db.GetContext(ctx, &job,
		"SELECT * FROM export_jobs WHERE id = $1 AND business_id = $2", jobID, businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrExportJobNotFound
		}
		return nil, fmt.Errorf("exportJobRepo.GetByID: %w", err)
	}
	return &job, nil
}

func (r *exportJobRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.ExportJob, error) {
	var jobs []domain.ExportJob
	err := r.db.SelectContext(ctx, &jobs,
		`UPDATE export_jobs SET status = $1, started_at = NOW()
		 WHERE id IN (
		   SELECT id FROM export_jobs WHERE status = $2
		   ORDER BY created_at LIMIT $3 FOR UPDATE SKIP LOCKED
		 )
		 RETURNING *`,
		domain.ExportStatusProcessing, domain.ExportStatusQueued, limit)
	if err != nil {
		return nil, fmt.Errorf("exportJobRepo.ClaimQueued: %w", err)
	}
	return jobs, nil
}

func (r *exportJobRepo) MarkCompleted(ctx context.Context, jobID uuid.UUID, fileName, s3Key string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE export_jobs SET status = $1, file_name = $2, s3_key = $3, error = '', completed_at = NOW()
		 WHERE id = $4`,
		domain.ExportStatusCompleted, fileName, s3Key, jobID)
	if err != nil {
		return fmt.Errorf("exportJobRepo.MarkCompleted: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrExportJobNotFound
	}
	return nil
}

func (r *exportJobRepo) MarkFailed(ctx context.Context, jobID uuid.UUID, reason string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE export_jobs SET status = $1, error = $2, completed_at = NOW() WHERE id = $3`,
		domain.ExportStatusFailed, reason, jobID)
	if err != nil {
		return fmt.Errorf("exportJobRepo.MarkFailed: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrExportJobNotFound
	}
	return nil
}
