package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"cpgg/internal/domain/researcher"
)

// ResearcherStore defines the store surface needed by profile management.
type ResearcherStore interface {
	Save(ctx context.Context, r researcher.Researcher) error
	Delete(ctx context.Context, id string) error
}

// SaveResearcherInput carries a researcher profile create or edit.
type SaveResearcherInput struct {
	ID        string // empty for create
	Name      string
	Title     string
	Email     string
	Areas     string
	Bio       string
	PhotoURL  string
	LattesURL string
}

// SaveResearcherDeps holds dependencies for SaveResearcher.
type SaveResearcherDeps struct {
	Researchers ResearcherStore
	GenerateID  func() string
	Now         func() time.Time
}

// ExecuteSaveResearcher creates or updates a researcher profile.
// PRE: input comes from the coordination admin area
// POST: Profile persisted with UpdatedAt set to now
func ExecuteSaveResearcher(ctx context.Context, input SaveResearcherInput, deps SaveResearcherDeps) (researcher.Researcher, error) {
	r := researcher.Researcher{
		ID:        input.ID,
		Name:      input.Name,
		Title:     input.Title,
		Email:     input.Email,
		Areas:     input.Areas,
		Bio:       input.Bio,
		PhotoURL:  input.PhotoURL,
		LattesURL: input.LattesURL,
		UpdatedAt: deps.Now(),
	}
	if r.ID == "" {
		r.ID = deps.GenerateID()
	}
	if err := r.Validate(); err != nil {
		return researcher.Researcher{}, err
	}
	if err := deps.Researchers.Save(ctx, r); err != nil {
		return researcher.Researcher{}, err
	}
	slog.Info("researcher_event", "event", "profile_saved", "researcher_id", r.ID)
	return r, nil
}

// ExecuteDeleteResearcher removes a researcher profile.
// PRE: id references an existing profile
// POST: Profile removed
func ExecuteDeleteResearcher(ctx context.Context, id string, deps SaveResearcherDeps) error {
	if err := deps.Researchers.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("researcher_event", "event", "profile_deleted", "researcher_id", id)
	return nil
}
