package model

import (
	"time"

	"github.com/google/uuid"
)

// ResumeStatus enumerates the lifecycle states of an uploaded resume.
type ResumeStatus string

const (
	ResumeStatusUploaded  ResumeStatus = "UPLOADED"
	ResumeStatusEnhancing ResumeStatus = "ENHANCING"
	ResumeStatusEnhanced  ResumeStatus = "ENHANCED"
)

// Resume represents an uploaded resume and its extracted content.
type Resume struct {
	ID           uuid.UUID      `json:"id"`
	FileName     string         `json:"file_name"`
	FileExt      string         `json:"file_ext"`
	FileSize     int64          `json:"file_size"`
	StoredPath   string         `json:"-"`
	Content      string         `json:"content"`
	QualityScore int            `json:"quality_score"`
	Entities     ParsedEntities `json:"entities"`
	Status       ResumeStatus   `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// ContactInfo holds contact details found in a resume.
type ContactInfo struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// ExperienceEntry is a role/company pair detected in the resume text.
type ExperienceEntry struct {
	Role    string `json:"role"`
	Company string `json:"company"`
}

// ParsedEntities is the structured information extracted from resume text.
type ParsedEntities struct {
	Name       string            `json:"name,omitempty"`
	Contact    ContactInfo       `json:"contact_info"`
	Skills     []string          `json:"skills"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []string          `json:"education"`
}

// ExtractionReport flags essential information missing from the extraction.
type ExtractionReport struct {
	Valid       bool     `json:"valid"`
	Warnings    []string `json:"warnings"`
	Suggestions []string `json:"suggestions"`
}

// ContentQuality scores the extracted text 0-100 and lists issues found.
type ContentQuality struct {
	Valid       bool     `json:"valid"`
	Score       int      `json:"quality_score"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

// UploadResult is the response payload for a successful resume upload.
type UploadResult struct {
	Resume  *Resume          `json:"resume"`
	Quality ContentQuality   `json:"quality"`
	Report  ExtractionReport `json:"report"`
}
