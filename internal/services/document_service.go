package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/lift-project-api/internal/render"
	"github.com/yukikurage/lift-project-api/internal/repository"
	"github.com/yukikurage/lift-project-api/internal/sanitize"
)

// timestampLayouts are tried in order when reading stored timestamps.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// RenderedDocument is a generated PDF.
type RenderedDocument struct {
	Filename string
	Content  []byte
}

// DocumentService builds printable project documents.
type DocumentService struct {
	projectRepo repository.ProjectRepository
	engine      render.Engine
	now         func() time.Time
}

// NewDocumentService creates a new DocumentService. A nil clock uses time.Now.
func NewDocumentService(projectRepo repository.ProjectRepository, engine render.Engine, now func() time.Time) *DocumentService {
	if now == nil {
		now = time.Now
	}
	return &DocumentService{
		projectRepo: projectRepo,
		engine:      engine,
		now:         now,
	}
}

// Build loads an owned project and prepares its document. Unreadable creation
// times fall back to now; a missing or unreadable update time mirrors the
// creation time.
func (s *DocumentService) Build(ctx context.Context, projectID, userID uint64) (*render.Document, error) {
	detail, err := s.projectRepo.GetDetail(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	created, ok := parseTimestamp(detail.Project.CreatedAt)
	if !ok {
		created = s.now()
	}
	updated := created
	if detail.Project.UpdatedAt != nil {
		if t, ok := parseTimestamp(*detail.Project.UpdatedAt); ok {
			updated = t
		}
	}

	return &render.Document{
		Project:               sanitize.Project(detail.Project),
		ModificationTypes:     detail.ModificationTypes,
		ApplicableNorms:       detail.ApplicableNorms,
		LegalizationProcesses: detail.LegalizationProcesses,
		CreatedAt:             created,
		UpdatedAt:             updated,
		Filename:              "proyecto_" + detail.Project.OrderNumber + ".pdf",
	}, nil
}

// Render builds the document and prints it to PDF.
func (s *DocumentService) Render(ctx context.Context, projectID, userID uint64) (*RenderedDocument, error) {
	doc, err := s.Build(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	html, err := render.HTML(doc)
	if err != nil {
		return nil, err
	}

	pdf, err := s.engine.Render(ctx, html, render.Stylesheet())
	if err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}

	return &RenderedDocument{
		Filename: doc.Filename,
		Content:  pdf,
	}, nil
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
