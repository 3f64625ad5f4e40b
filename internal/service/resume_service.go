package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/vitaworks/vitae-backend/internal/config"
	"github.com/vitaworks/vitae-backend/internal/extract"
	"github.com/vitaworks/vitae-backend/internal/model"
	"github.com/vitaworks/vitae-backend/internal/parser"
	"github.com/vitaworks/vitae-backend/internal/repository"
	"github.com/vitaworks/vitae-backend/internal/search"
)

// Sentinel errors for resume uploads.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrEmptyFile           = errors.New("file is empty")
	ErrNoExtractableText   = errors.New("no extractable text")
	ErrResumeNotFound      = errors.New("resume not found")
)

// ResumeService handles upload, extraction and lifecycle of resumes.
type ResumeService struct {
	cfg        *config.Config
	resumeRepo *repository.ResumeRepository
	index      *search.ResumeIndex
	log        zerolog.Logger
}

// NewResumeService creates a new ResumeService.
func NewResumeService(cfg *config.Config, resumeRepo *repository.ResumeRepository, index *search.ResumeIndex, log zerolog.Logger) *ResumeService {
	return &ResumeService{
		cfg:        cfg,
		resumeRepo: resumeRepo,
		index:      index,
		log:        log.With().Str("component", "resume_service").Logger(),
	}
}

// Upload validates, stores, parses and indexes an uploaded resume file. The
// returned result carries the extraction report and content quality score so
// the client can warn the user about thin resumes immediately.
func (s *ResumeService) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*model.UploadResult, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	if !s.cfg.ExtensionAllowed(ext) {
		return nil, fmt.Errorf("%w: .%s (allowed: %s)",
			ErrUnsupportedFileType, ext, strings.Join(s.cfg.AllowedExtensions, ", "))
	}
	if header.Size > s.cfg.MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes (max: %d)", ErrFileTooLarge, header.Size, s.cfg.MaxFileSize)
	}
	if header.Size == 0 {
		return nil, ErrEmptyFile
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxFileSize {
		return nil, fmt.Errorf("%w: stream exceeds declared size (max: %d)", ErrFileTooLarge, s.cfg.MaxFileSize)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	content, err := parser.ExtractText(header.Filename, data)
	if err != nil {
		if errors.Is(err, parser.ErrNoTextContent) {
			return nil, ErrNoExtractableText
		}
		return nil, fmt.Errorf("extract text: %w", err)
	}

	storedPath, err := s.saveToDisk(data, ext)
	if err != nil {
		return nil, err
	}

	entities := extract.Entities(content)
	quality := extract.ScoreContent(content)
	report := extract.ValidateEntities(entities)

	resume := &model.Resume{
		ID:           uuid.New(),
		FileName:     header.Filename,
		FileExt:      ext,
		FileSize:     header.Size,
		StoredPath:   storedPath,
		Content:      content,
		QualityScore: quality.Score,
		Entities:     entities,
		Status:       model.ResumeStatusUploaded,
	}

	if err := s.resumeRepo.Create(ctx, resume); err != nil {
		// Don't leave the orphaned file behind.
		_ = os.Remove(storedPath)
		return nil, fmt.Errorf("persist resume: %w", err)
	}

	if err := s.index.Index(resume); err != nil {
		// Search is best-effort; the resume itself is safely stored.
		s.log.Warn().Err(err).Str("resume_id", resume.ID.String()).Msg("failed to index resume")
	}

	s.log.Info().
		Str("resume_id", resume.ID.String()).
		Str("file_name", resume.FileName).
		Int("quality_score", quality.Score).
		Msg("resume uploaded")

	return &model.UploadResult{Resume: resume, Quality: quality, Report: report}, nil
}

func (s *ResumeService) saveToDisk(data []byte, ext string) (string, error) {
	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	destPath := filepath.Join(s.cfg.UploadDir, uuid.New().String()+"."+ext)
	if err := os.WriteFile(destPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return destPath, nil
}

// GetByID retrieves a single resume with its full content.
func (s *ResumeService) GetByID(ctx context.Context, id uuid.UUID) (*model.Resume, error) {
	resume, err := s.resumeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResumeNotFound
		}
		return nil, err
	}
	return resume, nil
}

// List returns a page of resumes plus the total count for pagination.
func (s *ResumeService) List(ctx context.Context, page, limit int) ([]model.Resume, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	resumes, err := s.resumeRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.resumeRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return resumes, total, nil
}

// Delete removes a resume, its stored file and its index entry.
func (s *ResumeService) Delete(ctx context.Context, id uuid.UUID) error {
	resume, err := s.resumeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrResumeNotFound
		}
		return err
	}

	if err := s.resumeRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.index.Delete(id); err != nil {
		s.log.Warn().Err(err).Str("resume_id", id.String()).Msg("failed to deindex resume")
	}
	if resume.StoredPath != "" {
		if err := os.Remove(resume.StoredPath); err != nil && !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", resume.StoredPath).Msg("failed to remove stored file")
		}
	}
	return nil
}

// Search runs a full-text query over indexed resumes and hydrates the hits
// from the database.
func (s *ResumeService) Search(ctx context.Context, query string, limit int) ([]model.Resume, []search.Hit, error) {
	hits, err := s.index.Search(query, limit)
	if err != nil {
		return nil, nil, err
	}

	resumes := make([]model.Resume, 0, len(hits))
	kept := make([]search.Hit, 0, len(hits))
	for _, hit := range hits {
		resume, err := s.resumeRepo.GetByID(ctx, hit.ResumeID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// Index drifted from the database; clean up lazily.
				_ = s.index.Delete(hit.ResumeID)
				continue
			}
			return nil, nil, err
		}
		resumes = append(resumes, *resume)
		kept = append(kept, hit)
	}
	return resumes, kept, nil
}
