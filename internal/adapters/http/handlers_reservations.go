package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"cpgg/internal/application/listutil"
	"cpgg/internal/application/orchestrators"
	"cpgg/internal/application/projections"
	"cpgg/internal/domain/admin"
	"cpgg/internal/domain/reservation"
)

// reservationArea is the role set allowed into the reservation back office.
var reservationArea = []string{admin.RoleCoordenacao, admin.RoleSecretaria}

// handleAdminReservations handles GET /api/admin/reservations?q=&kind=&status=
// Rows are fetched ordered by created_at DESC; filters compose with AND and
// apply in memory so the order is fixed at fetch time.
func handleAdminReservations(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireRole(w, r, reservationArea...); !ok {
		return
	}

	all, err := stores.ReservationStore.ListAll(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	q := r.URL.Query().Get("q")
	kind := r.URL.Query().Get("kind")
	status := r.URL.Query().Get("status")

	keep := listutil.All(
		func(res reservation.Reservation) bool {
			if q == "" {
				return true
			}
			return listutil.ContainsFold(res.FirstName, q) ||
				listutil.ContainsFold(res.LastName, q) ||
				listutil.ContainsFold(res.Email, q) ||
				listutil.ContainsFold(res.Purpose, q)
		},
		func(res reservation.Reservation) bool {
			return kind == "" || res.Kind == kind
		},
		func(res reservation.Reservation) bool {
			return status == "" || res.Status == status
		},
	)

	filtered := listutil.Filter(all, keep)
	if filtered == nil {
		filtered = []reservation.Reservation{}
	}
	writeJSON(w, http.StatusOK, filtered)
}

// reservationEdit mirrors UpdateReservationInput with JSON-friendly
// timestamps. Nil fields are left untouched on the stored row.
type reservationEdit struct {
	ID        string  `json:"ID"`
	FirstName *string `json:"FirstName"`
	LastName  *string `json:"LastName"`
	Email     *string `json:"Email"`
	Purpose   *string `json:"Purpose"`
	Equipment *string `json:"Equipment"`
	StartTime *string `json:"StartTime"`
	EndTime   *string `json:"EndTime"`
	Status    *string `json:"Status"`
}

func (e reservationEdit) toInput() (orchestrators.UpdateReservationInput, error) {
	input := orchestrators.UpdateReservationInput{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		Purpose:   e.Purpose,
		Equipment: e.Equipment,
		Status:    e.Status,
	}
	if e.StartTime != nil {
		t, err := time.Parse(time.RFC3339, *e.StartTime)
		if err != nil {
			return input, fmt.Errorf("StartTime: %w", err)
		}
		input.StartTime = &t
	}
	if e.EndTime != nil {
		t, err := time.Parse(time.RFC3339, *e.EndTime)
		if err != nil {
			return input, fmt.Errorf("EndTime: %w", err)
		}
		input.EndTime = &t
	}
	return input, nil
}

// handleUpdateReservation handles POST /api/admin/reservations/update
func handleUpdateReservation(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireRole(w, r, reservationArea...); !ok {
		return
	}

	var edit reservationEdit
	if err := strictDecode(r, &edit); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	input, err := edit.toInput()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := orchestrators.ExecuteUpdateReservation(r.Context(), input,
		orchestrators.UpdateReservationDeps{Reservations: stores.ReservationStore})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleReservationStatus handles POST /api/admin/reservations/status
func handleReservationStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireRole(w, r, reservationArea...); !ok {
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

	updated, err := orchestrators.ExecuteUpdateReservation(r.Context(),
		orchestrators.UpdateReservationInput{ID: input.ID, Status: &input.Status},
		orchestrators.UpdateReservationDeps{Reservations: stores.ReservationStore})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteReservations handles POST /api/admin/reservations/delete
// Accepts explicit IDs or a category (physical, laboratory, all, or a single
// kind). The removed rows sit in the undo buffer for a short window.
func handleDeleteReservations(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireRole(w, r, reservationArea...); !ok {
		return
	}

	var input struct {
		IDs      []string `json:"IDs"`
		Category string   `json:"Category"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	deleted, err := orchestrators.ExecuteDeleteReservations(r.Context(),
		orchestrators.DeleteReservationsInput{IDList: input.IDs, Category: input.Category},
		orchestrators.DeleteReservationsDeps{
			Reservations: stores.ReservationStore,
			UndoBuffer:   reservationUndo,
		})
	if err != nil {
		if errors.Is(err, orchestrators.ErrNothingSelected) || errors.Is(err, reservation.ErrInvalidKind) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"Deleted": deleted})
}

// handleUndoDeleteReservations handles POST /api/admin/reservations/undo
func handleUndoDeleteReservations(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireRole(w, r, reservationArea...); !ok {
		return
	}

	restored, err := orchestrators.ExecuteUndoDeleteReservations(r.Context(),
		orchestrators.DeleteReservationsDeps{
			Reservations: stores.ReservationStore,
			UndoBuffer:   reservationUndo,
		})
	if err != nil {
		if errors.Is(err, orchestrators.ErrNothingToUndo) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"Restored": restored})
}

// maxChartUploadBytes bounds the dashboard chart snapshot upload.
const maxChartUploadBytes = 5 << 20

// handleExportReport handles POST /api/admin/reservations/export
// Multipart form: section=physical|laboratory plus an optional "chart" PNG
// snapshot of the dashboard chart. Responds with the PDF document.
func handleExportReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireRole(w, r, reservationArea...); !ok {
		return
	}

	if err := r.ParseMultipartForm(maxChartUploadBytes); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	section := r.FormValue("section")

	var chartPNG []byte
	if file, _, err := r.FormFile("chart"); err == nil {
		chartPNG, err = io.ReadAll(io.LimitReader(file, maxChartUploadBytes))
		file.Close()
		if err != nil {
			http.Error(w, "failed to read chart upload", http.StatusBadRequest)
			return
		}
	}

	result, err := orchestrators.ExecuteExportReport(r.Context(),
		orchestrators.ExportReportInput{Section: section, ChartPNG: chartPNG},
		orchestrators.ExportReportDeps{
			Reservations: stores.ReservationStore,
			Renderer:     reportBuilder,
			Now:          timeNow,
		})
	if err != nil {
		if errors.Is(err, reservation.ErrInvalidKind) {
			http.Error(w, "section must be physical or laboratory", http.StatusBadRequest)
			return
		}
		internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.Write(result.PDF)
}

// handleReservationDashboard handles GET /api/admin/dashboard/reservations
func handleReservationDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireRole(w, r, reservationArea...); !ok {
		return
	}

	dashboard, err := projections.ExecuteGetReservationDashboard(r.Context(),
		projections.GetReservationDashboardDeps{Reservations: stores.ReservationStore})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}
