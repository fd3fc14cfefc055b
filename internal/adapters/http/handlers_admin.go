package web

import (
	"errors"
	"net/http"
	"time"

	"cpgg/internal/application/orchestrators"
	"cpgg/internal/domain/admin"
	"cpgg/internal/domain/outbox"
	"cpgg/internal/domain/repair"
)

// repairArea is the role set allowed into the repair back office.
var repairArea = []string{admin.RoleTI, admin.RoleSecretaria}

// adminAny is the wildcard role set for areas open to every admin.
var adminAny = []string{admin.RoleAny}

// handleSaveRosterMember handles POST /api/admin/roster/save
func handleSaveRosterMember(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireRole(w, r, admin.RoleCoordenacao); !ok {
		return
	}

	var input struct {
		ID       string `json:"ID"`
		Name     string `json:"Name"`
		Title    string `json:"Title"`
		Section  string `json:"Section"`
		Position int    `json:"Position"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	member, err := orchestrators.ExecuteSaveRosterMember(r.Context(),
		orchestrators.SaveRosterMemberInput{
			ID:       input.ID,
			Name:     input.Name,
			Title:    input.Title,
			Section:  input.Section,
			Position: input.Position,
		},
		orchestrators.SaveRosterMemberDeps{
			Roster:     stores.RosterStore,
			GenerateID: generateID,
		})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

// handleDeleteRosterMember handles POST /api/admin/roster/delete
func handleDeleteRosterMember(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireRole(w, r, admin.RoleCoordenacao); !ok {
		return
	}

	var input struct {
		ID string `json:"ID"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteDeleteRosterMember(r.Context(), input.ID,
		orchestrators.DeleteRosterMemberDeps{
			Roster:     stores.RosterStore,
			UndoBuffer: rosterUndo,
		})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleUndoDeleteRosterMember handles POST /api/admin/roster/undo
func handleUndoDeleteRosterMember(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireRole(w, r, admin.RoleCoordenacao); !ok {
		return
	}

	member, err := orchestrators.ExecuteUndoDeleteRosterMember(r.Context(),
		orchestrators.DeleteRosterMemberDeps{
			Roster:     stores.RosterStore,
			UndoBuffer: rosterUndo,
		})
	if err != nil {
		if errors.Is(err, orchestrators.ErrNothingToUndo) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

// handleSaveResearcher handles POST /api/admin/researchers/save
// Every admin role may curate the public researcher directory.
func handleSaveResearcher(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireRole(w, r, adminAny...); !ok {
		return
	}

	var input struct {
		ID        string `json:"ID"`
		Name      string `json:"Name"`
		Title     string `json:"Title"`
		Email     string `json:"Email"`
		Areas     string `json:"Areas"`
		Bio       string `json:"Bio"`
		PhotoURL  string `json:"PhotoURL"`
		LattesURL string `json:"LattesURL"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	saved, err := orchestrators.ExecuteSaveResearcher(r.Context(),
		orchestrators.SaveResearcherInput{
			ID:        input.ID,
			Name:      input.Name,
			Title:     input.Title,
			Email:     input.Email,
			Areas:     input.Areas,
			Bio:       input.Bio,
			PhotoURL:  input.PhotoURL,
			LattesURL: input.LattesURL,
		},
		orchestrators.SaveResearcherDeps{
			Researchers: stores.ResearcherStore,
			GenerateID:  generateID,
			Now:         timeNow,
		})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// handleDeleteResearcher handles POST /api/admin/researchers/delete
func handleDeleteResearcher(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireRole(w, r, adminAny...); !ok {
		return
	}

	var input struct {
		ID string `json:"ID"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteDeleteResearcher(r.Context(), input.ID,
		orchestrators.SaveResearcherDeps{
			Researchers: stores.ResearcherStore,
			GenerateID:  generateID,
			Now:         timeNow,
		})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminRepairs handles GET /api/admin/repairs
func handleAdminRepairs(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireRole(w, r, repairArea...); !ok {
		return
	}

	list, err := stores.RepairStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	if list == nil {
		list = []repair.Request{}
	}
	writeJSON(w, http.StatusOK, list)
}

// handleRepairStatus handles POST /api/admin/repairs/status
func handleRepairStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireRole(w, r, repairArea...); !ok {
		return
	}

	var input struct {
		ID     string `json:"ID"`
		Status string `json:"Status"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	updated, err := orchestrators.ExecuteUpdateRepairStatus(r.Context(),
		orchestrators.UpdateRepairStatusInput{ID: input.ID, Status: input.Status},
		orchestrators.UpdateRepairDeps{Repairs: stores.RepairStore})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteRepair handles POST /api/admin/repairs/delete
func handleDeleteRepair(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireRole(w, r, repairArea...); !ok {
		return
	}

	var input struct {
		ID string `json:"ID"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteDeleteRepair(r.Context(), input.ID,
		orchestrators.UpdateRepairDeps{Repairs: stores.RepairStore})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminOutbox handles GET /api/admin/outbox?status=failed
// Default view is the pending queue; status=failed shows abandoned sends.
func handleAdminOutbox(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireRole(w, r, adminAny...); !ok {
		return
	}

	var entries []outbox.Entry
	var err error
	if r.URL.Query().Get("status") == "failed" {
		entries, err = stores.OutboxStore.ListFailed(r.Context(), 100)
	} else {
		entries, err = stores.OutboxStore.ListPending(r.Context(), 100)
	}
	if err != nil {
		internalError(w, err)
		return
	}
	if entries == nil {
		entries = []outbox.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleOutboxRetry handles POST /api/admin/outbox/retry
// Runs one retry pass immediately instead of waiting for the scheduler.
func handleOutboxRetry(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireRole(w, r, adminAny...); !ok {
		return
	}

	err := orchestrators.ExecuteOutboxRetry(r.Context(), orchestrators.OutboxRetryDeps{
		OutboxStore: stores.OutboxStore,
		Sender:      emailSender,
		Now:         timeNow,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePerfSnapshot handles GET /api/admin/perf
func handlePerfSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireRole(w, r, adminAny...); !ok {
		return
	}
	if perfCollector == nil {
		http.Error(w, "collector disabled", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, perfCollector.Snapshot(timeNow().Add(-time.Hour), 10))
}

// handleHealthz handles GET /healthz
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
