package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ledgerbook/internal/domain"
	"ledgerbook/internal/export"
	"ledgerbook/internal/port"
)

// ExportConfig holds export limits and storage settings.
type ExportConfig struct {
	MaxRows       int
	Bucket        string
	KeyPrefix     string
	PresignExpiry int64
}

// ExportFile is a rendered export ready to be sent to a client.
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// CreateExportJobInput is the DTO for queueing an asynchronous export.
type CreateExportJobInput struct {
	BusinessID   uuid.UUID           `json:"-"`
	RequestedBy  uuid.UUID           `json:"-"`
	DocumentType domain.DocumentType `json:"document_type"`
	Format       domain.ExportFormat `json:"format" binding:"required"`
	Filters      domain.ListQuery    `json:"filters"`
	NotifyEmail  string              `json:"notify_email" binding:"omitempty,email"`
}

// ExportJobView is an export job plus a download link once it has finished.
type ExportJobView struct {
	*domain.ExportJob
	DownloadURL string `json:"download_url,omitempty"`
}

// ExportService renders document and inventory exports, synchronously or as
// background jobs.
type ExportService interface {
	ExportDocuments(ctx context.Context, businessID uuid.UUID, q domain.ListQuery, format domain.ExportFormat) (*ExportFile, error)
	ExportInventory(ctx context.Context, businessID uuid.UUID, q domain.ListQuery, format domain.ExportFormat) (*ExportFile, error)
	CreateJob(ctx context.Context, input *CreateExportJobInput) (*domain.ExportJob, error)
	GetJob(ctx context.Context, businessID, jobID uuid.UUID) (*ExportJobView, error)
	// RunJob renders a claimed job, stores the file and records the outcome.
	RunJob(ctx context.Context, job *domain.ExportJob) error
}

type exportService struct {
	docRepo  port.DocumentRepository
	invRepo  port.InventoryRepository
	jobRepo  port.ExportJobRepository
	storage  port.ObjectStorage
	email    port.EmailSender
	exporter *export.Exporter
	cfg      ExportConfig
	log      *zap.Logger
	now      func() time.Time
}

// NewExportService creates a new ExportService.
func NewExportService(
	docRepo port.DocumentRepository,
	invRepo port.InventoryRepository,
	jobRepo port.ExportJobRepository,
	storage port.ObjectStorage,
	email port.EmailSender,
	exporter *export.Exporter,
	cfg ExportConfig,
	log *zap.Logger,
) ExportService {
	return &exportService{
		docRepo:  docRepo,
		invRepo:  invRepo,
		jobRepo:  jobRepo,
		storage:  storage,
		email:    email,
		exporter: exporter,
		cfg:      cfg,
		log:      log.Named("export"),
		now:      time.Now,
	}
}

func (s *exportService) ExportDocuments(ctx context.Context, businessID uuid.UUID, q domain.ListQuery, format domain.ExportFormat) (*ExportFile, error) {
	if err := checkExportRequest(q.DocumentType, format); err != nil {
		return nil, err
	}
	docs, err := s.docRepo.ListForExport(ctx, businessID, q, s.cfg.MaxRows)
	if err != nil {
		return nil, fmt.Errorf("loading documents: %w", err)
	}
	now := s.now()
	return s.render(ctx, export.DocumentTable(documentsTitle(q.DocumentType), docs, now), format, now)
}

func (s *exportService) ExportInventory(ctx context.Context, businessID uuid.UUID, q domain.ListQuery, format domain.ExportFormat) (*ExportFile, error) {
	if _, ok := domain.ValidExportFormats[format]; !ok {
		return nil, domain.ErrUnsupportedExportFormat
	}
	q.Offset = 0
	q.Limit = s.cfg.MaxRows
	items, _, err := s.invRepo.List(ctx, businessID, q)
	if err != nil {
		return nil, fmt.Errorf("loading inventory: %w", err)
	}
	now := s.now()
	return s.render(ctx, export.InventoryTable("Inventory", items, now), format, now)
}

func (s *exportService) render(ctx context.Context, t *export.Table, format domain.ExportFormat, now time.Time) (*ExportFile, error) {
	data, err := s.exporter.Bytes(ctx, format, t)
	if err != nil {
		s.log.Error("export failed",
			zap.String("title", t.Title),
			zap.String("format", string(format)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("rendering %s export: %w", format, err)
	}
	return &ExportFile{
		FileName:    export.BuildFilename(t.Title, format, now),
		ContentType: domain.ValidExportFormats[format],
		Data:        data,
	}, nil
}

func (s *exportService) CreateJob(ctx context.Context, input *CreateExportJobInput) (*domain.ExportJob, error) {
	if err := checkExportRequest(input.DocumentType, input.Format); err != nil {
		return nil, err
	}
	filters, err := json.Marshal(input.Filters)
	if err != nil {
		return nil, fmt.Errorf("encoding filters: %w", err)
	}

	job := &domain.ExportJob{
		BusinessID:   input.BusinessID,
		RequestedBy:  input.RequestedBy,
		DocumentType: input.DocumentType,
		Format:       input.Format,
		Filters:      filters,
		Status:       domain.ExportStatusQueued,
		NotifyEmail:  input.NotifyEmail,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("creating export job: %w", err)
	}
	return job, nil
}

func (s *exportService) GetJob(ctx context.Context, businessID, jobID uuid.UUID) (*ExportJobView, error) {
	job, err := s.jobRepo.GetByID(ctx, businessID, jobID)
	if err != nil {
		return nil, err
	}
	view := &ExportJobView{ExportJob: job}
	if job.Status == domain.ExportStatusCompleted && job.S3Key != "" {
		url, err := s.storage.GetPresignedURL(ctx, s.cfg.Bucket, job.S3Key, s.cfg.PresignExpiry)
		if err != nil {
			return nil, fmt.Errorf("presigning export: %w", err)
		}
		view.DownloadURL = url
	}
	return view, nil
}

func (s *exportService) RunJob(ctx context.Context, job *domain.ExportJob) error {
	log := s.log.With(
		zap.String("job_id", job.ID.String()),
		zap.String("business_id", job.BusinessID.String()),
		zap.String("format", string(job.Format)),
	)

	file, key, err := s.produce(ctx, job)
	if err != nil {
		log.Error("export job failed", zap.Error(err))
		if markErr := s.jobRepo.MarkFailed(ctx, job.ID, err.Error()); markErr != nil {
			log.Error("marking export job failed", zap.Error(markErr))
		}
		return err
	}

	if err := s.jobRepo.MarkCompleted(ctx, job.ID, file.FileName, key); err != nil {
		// No job row points at the object, so drop it.
		if delErr := s.storage.Delete(ctx, s.cfg.Bucket, key); delErr != nil {
			log.Warn("deleting orphaned export", zap.String("key", key), zap.Error(delErr))
		}
		return fmt.Errorf("marking export job completed: %w", err)
	}
	log.Info("export job completed", zap.String("file", file.FileName), zap.Int("bytes", len(file.Data)))

	if job.NotifyEmail != "" {
		s.notify(ctx, log, job, file.FileName, key)
	}
	return nil
}

func (s *exportService) produce(ctx context.Context, job *domain.ExportJob) (*ExportFile, string, error) {
	var q domain.ListQuery
	if len(job.Filters) > 0 {
		if err := json.Unmarshal(job.Filters, &q); err != nil {
			return nil, "", fmt.Errorf("decoding filters: %w", err)
		}
	}
	q.DocumentType = job.DocumentType

	file, err := s.ExportDocuments(ctx, job.BusinessID, q, job.Format)
	if err != nil {
		return nil, "", err
	}

	key := path.Join(s.cfg.KeyPrefix, job.BusinessID.String(), job.ID.String(), file.FileName)
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(file.Data),
		ContentType: file.ContentType,
		FileName:    file.FileName,
	}); err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	return file, key, nil
}

// notify emails a download link. Failures are logged; the job stays completed.
func (s *exportService) notify(ctx context.Context, log *zap.Logger, job *domain.ExportJob, fileName, key string) {
	url, err := s.storage.GetPresignedURL(ctx, s.cfg.Bucket, key, s.cfg.PresignExpiry)
	if err != nil {
		log.Warn("presigning export for email", zap.Error(err))
		return
	}
	if err := s.email.SendExportReadyEmail(ctx, job.NotifyEmail, fileName, url); err != nil {
		log.Warn("sending export ready email", zap.Error(err))
	}
}

func checkExportRequest(docType domain.DocumentType, format domain.ExportFormat) error {
	if _, ok := domain.ValidExportFormats[format]; !ok {
		return domain.ErrUnsupportedExportFormat
	}
	if docType != "" && !domain.ValidDocumentTypes[docType] {
		return domain.ErrInvalidDocumentType
	}
	return nil
}

func documentsTitle(t domain.DocumentType) string {
	if t == "" {
		return "Documents"
	}
	return t.Label() + "s"
}
