package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/signintech/gopdf"
	"github.com/vitaworks/vitae-backend/internal/config"
	"github.com/vitaworks/vitae-backend/internal/model"
)

// ErrPDFUnavailable means the export font is not installed on this host.
var ErrPDFUnavailable = errors.New("pdf export unavailable: font not configured")

const (
	pdfFontName   = "body"
	pdfFontSize   = 11.0
	pdfLineHeight = 16.0
	pdfMargin     = 40.0
)

// ExportService renders enhanced resumes as downloadable documents.
type ExportService struct {
	cfg      *config.Config
	enhancer *EnhancementService
	resumes  *ResumeService
	fontData []byte
	log      zerolog.Logger
}

// NewExportService creates an ExportService. The PDF font is loaded once at
// startup; a missing font disables PDF export but leaves TXT export working.
func NewExportService(cfg *config.Config, enhancer *EnhancementService, resumes *ResumeService, log zerolog.Logger) *ExportService {
	s := &ExportService{
		cfg:      cfg,
		enhancer: enhancer,
		resumes:  resumes,
		log:      log.With().Str("component", "export_service").Logger(),
	}

	data, err := os.ReadFile(cfg.PDFFontPath)
	if err != nil {
		s.log.Warn().Err(err).Str("path", cfg.PDFFontPath).Msg("pdf export disabled, font not found")
	} else {
		s.fontData = data
	}
	return s
}

// ExportTXT returns the enhanced resume as plain text with a suggested
// download file name.
func (s *ExportService) ExportTXT(ctx context.Context, resumeID uuid.UUID) ([]byte, string, error) {
	resume, enhancement, err := s.load(ctx, resumeID)
	if err != nil {
		return nil, "", err
	}
	return []byte(enhancement.FullContent), exportFileName(resume, "txt"), nil
}

// ExportPDF renders the enhanced resume as a single-column PDF.
func (s *ExportService) ExportPDF(ctx context.Context, resumeID uuid.UUID) ([]byte, string, error) {
	if s.fontData == nil {
		return nil, "", ErrPDFUnavailable
	}

	resume, enhancement, err := s.load(ctx, resumeID)
	if err != nil {
		return nil, "", err
	}

	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	if err := pdf.AddTTFFontData(pdfFontName, s.fontData); err != nil {
		return nil, "", fmt.Errorf("load font: %w", err)
	}
	if err := pdf.SetFont(pdfFontName, "", pdfFontSize); err != nil {
		return nil, "", fmt.Errorf("set font: %w", err)
	}

	pdf.AddPage()
	pageHeight := gopdf.PageSizeA4.H
	pageWidth := gopdf.PageSizeA4.W
	y := pdfMargin

	for _, line := range strings.Split(enhancement.FullContent, "\n") {
		for _, wrapped := range wrapLine(&pdf, line, pageWidth-2*pdfMargin) {
			if y > pageHeight-pdfMargin {
				pdf.AddPage()
				y = pdfMargin
			}
			pdf.SetX(pdfMargin)
			pdf.SetY(y)
			if err := pdf.Cell(nil, wrapped); err != nil {
				return nil, "", fmt.Errorf("render line: %w", err)
			}
			y += pdfLineHeight
		}
	}

	return pdf.GetBytesPdf(), exportFileName(resume, "pdf"), nil
}

func (s *ExportService) load(ctx context.Context, resumeID uuid.UUID) (*model.Resume, *model.Enhancement, error) {
	resume, err := s.resumes.GetByID(ctx, resumeID)
	if err != nil {
		return nil, nil, err
	}
	enhancement, err := s.enhancer.GetResult(ctx, resumeID)
	if err != nil {
		return nil, nil, err
	}
	return resume, enhancement, nil
}

// wrapLine splits a line so every piece fits within maxWidth. Measurement
// errors fall back to the unwrapped line.
func wrapLine(pdf *gopdf.GoPdf, line string, maxWidth float64) []string {
	if strings.TrimSpace(line) == "" {
		return []string{""}
	}

	words := strings.Fields(line)
	var out []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		width, err := pdf.MeasureTextWidth(candidate)
		if err != nil {
			return []string{line}
		}
		if width > maxWidth && current != "" {
			out = append(out, current)
			current = word
			continue
		}
		current = candidate
	}
	if current != "" {
		out = append(out, current)
	}
	return out
}

func exportFileName(resume *model.Resume, ext string) string {
	base := strings.TrimSuffix(resume.FileName, "."+resume.FileExt)
	if base == "" {
		base = "resume"
	}
	return fmt.Sprintf("enhanced_%s.%s", base, ext)
}
