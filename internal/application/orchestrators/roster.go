package orchestrators

import (
	"context"
	"log/slog"

	"cpgg/internal/application/undo"
	"cpgg/internal/domain/roster"
)

// RosterStore defines the store surface needed by roster management.
type RosterStore interface {
	GetByID(ctx context.Context, id string) (roster.Member, error)
	Save(ctx context.Context, m roster.Member) error
	Delete(ctx context.Context, id string) error
}

// SaveRosterMemberInput carries a roster member create or edit.
type SaveRosterMemberInput struct {
	ID       string // empty for create
	Name     string
	Title    string
	Section  string
	Position int
}

// SaveRosterMemberDeps holds dependencies for SaveRosterMember.
type SaveRosterMemberDeps struct {
	Roster     RosterStore
	GenerateID func() string
}

// ExecuteSaveRosterMember creates or updates a roster member.
// PRE: input comes from the coordination admin area
// POST: Member persisted; a new ID is assigned when input.ID is empty
func ExecuteSaveRosterMember(ctx context.Context, input SaveRosterMemberInput, deps SaveRosterMemberDeps) (roster.Member, error) {
	m := roster.Member{
		ID:       input.ID,
		Name:     input.Name,
		Title:    input.Title,
		Section:  input.Section,
		Position: input.Position,
	}
	if m.ID == "" {
		m.ID = deps.GenerateID()
	}
	if err := m.Validate(); err != nil {
		return roster.Member{}, err
	}
	if err := deps.Roster.Save(ctx, m); err != nil {
		return roster.Member{}, err
	}
	slog.Info("roster_event", "event", "member_saved", "member_id", m.ID, "section", m.Section)
	return m, nil
}

// DeleteRosterMemberDeps holds dependencies for roster deletion and undo.
type DeleteRosterMemberDeps struct {
	Roster     RosterStore
	UndoBuffer *undo.Buffer[roster.Member]
}

// ExecuteDeleteRosterMember removes one member and parks it for undo.
// PRE: id references an existing member
// POST: Member removed; the buffer holds a verbatim copy
func ExecuteDeleteRosterMember(ctx context.Context, id string, deps DeleteRosterMemberDeps) error {
	m, err := deps.Roster.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := deps.Roster.Delete(ctx, id); err != nil {
		return err
	}
	deps.UndoBuffer.Push([]roster.Member{m})
	slog.Info("roster_event", "event", "member_deleted", "member_id", id)
	return nil
}

// ExecuteUndoDeleteRosterMember restores the most recently deleted member.
// PRE: a deletion happened within the undo window
// POST: The member exists again with its original ID and position
func ExecuteUndoDeleteRosterMember(ctx context.Context, deps DeleteRosterMemberDeps) (roster.Member, error) {
	batch, ok := deps.UndoBuffer.Take()
	if !ok || len(batch) == 0 {
		return roster.Member{}, ErrNothingToUndo
	}
	m := batch[0]
	if err := deps.Roster.Save(ctx, m); err != nil {
		deps.UndoBuffer.Push(batch)
		return roster.Member{}, err
	}
	slog.Info("roster_event", "event", "member_restored", "member_id", m.ID)
	return m, nil
}
