package search

import (
	"errors"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vitaworks/vitae-backend/internal/model"
)

// resumeDocument is the flattened shape stored in the index. Only searchable
// text goes in; the database remains the source of truth for the full record.
type resumeDocument struct {
	FileName string `json:"file_name"`
	Content  string `json:"content"`
	Skills   string `json:"skills"`
}

// Hit is one search result with the match score and highlighted fragments.
type Hit struct {
	ResumeID  uuid.UUID           `json:"resume_id"`
	Score     float64             `json:"score"`
	Fragments map[string][]string `json:"fragments,omitempty"`
}

// ResumeIndex is a full-text index over uploaded resume content.
type ResumeIndex struct {
	index bleve.Index
	log   zerolog.Logger
}

// Open opens the index at path, creating it with the resume mapping when it
// does not exist yet.
func Open(path string, log zerolog.Logger) (*ResumeIndex, error) {
	idx, err := bleve.Open(path)
	if errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
		mapping := bleve.NewIndexMapping()

		docMapping := bleve.NewDocumentMapping()
		textFieldMapping := bleve.NewTextFieldMapping()
		docMapping.AddFieldMappingsAt("file_name", textFieldMapping)
		docMapping.AddFieldMappingsAt("content", textFieldMapping)
		docMapping.AddFieldMappingsAt("skills", textFieldMapping)

		mapping.AddDocumentMapping("resume", docMapping)
		mapping.DefaultMapping = docMapping

		idx, err = bleve.New(path, mapping)
	}
	if err != nil {
		return nil, err
	}

	return &ResumeIndex{
		index: idx,
		log:   log.With().Str("component", "search_index").Logger(),
	}, nil
}

// Index adds or replaces a resume in the index.
func (ri *ResumeIndex) Index(resume *model.Resume) error {
	doc := resumeDocument{
		FileName: resume.FileName,
		Content:  resume.Content,
		Skills:   strings.Join(resume.Entities.Skills, ", "),
	}
	return ri.index.Index(resume.ID.String(), doc)
}

// Delete removes a resume from the index. Missing documents are not an error.
func (ri *ResumeIndex) Delete(resumeID uuid.UUID) error {
	return ri.index.Delete(resumeID.String())
}

// Search runs a fuzzy match over content, skills and file name, returning up
// to limit hits ordered by score with highlighted fragments.
func (ri *ResumeIndex) Search(queryText string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 10
	}

	contentQuery := bleve.NewMatchQuery(queryText)
	contentQuery.SetField("content")
	contentQuery.SetFuzziness(1)

	skillsQuery := bleve.NewMatchQuery(queryText)
	skillsQuery.SetField("skills")

	nameQuery := bleve.NewMatchQuery(queryText)
	nameQuery.SetField("file_name")

	query := bleve.NewDisjunctionQuery(contentQuery, skillsQuery, nameQuery)

	searchReq := bleve.NewSearchRequest(query)
	searchReq.Size = limit
	searchReq.Highlight = bleve.NewHighlight()

	searchRes, err := ri.index.Search(searchReq)
	if err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(searchRes.Hits))
	for _, hit := range searchRes.Hits {
		id, err := uuid.Parse(hit.ID)
		if err != nil {
			ri.log.Warn().Str("doc_id", hit.ID).Msg("non-uuid document id in index, skipping")
			continue
		}
		hits = append(hits, Hit{
			ResumeID:  id,
			Score:     hit.Score,
			Fragments: hit.Fragments,
		})
	}
	return hits, nil
}

// Count returns the number of indexed resumes.
func (ri *ResumeIndex) Count() (uint64, error) {
	return ri.index.DocCount()
}

// Close releases the underlying index files.
func (ri *ResumeIndex) Close() error {
	return ri.index.Close()
}
