package web

import (
	"errors"
	"net/http"

	"cpgg/internal/application/orchestrators"
	"cpgg/internal/domain/researcher"
)

// handlePublicReservation handles POST /api/public/reservations
func handlePublicReservation(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		FirstName    string `json:"FirstName"`
		LastName     string `json:"LastName"`
		Email        string `json:"Email"`
		Purpose      string `json:"Purpose"`
		Kind         string `json:"Kind"`
		StartTime    string `json:"StartTime"`
		EndTime      string `json:"EndTime"`
		CaptchaToken string `json:"CaptchaToken"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if !verifyCaptcha(r.Context(), input.CaptchaToken) {
		http.Error(w, "captcha verification failed", http.StatusBadRequest)
		return
	}
	start, okStart := parseRFC3339(input.StartTime)
	end, okEnd := parseRFC3339(input.EndTime)
	if !okStart || !okEnd {
		http.Error(w, "StartTime and EndTime must be RFC3339 timestamps", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteSubmitReservation(r.Context(), orchestrators.SubmitReservationInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Purpose:   input.Purpose,
		Kind:      input.Kind,
		StartTime: start,
		EndTime:   end,
	}, orchestrators.SubmitReservationDeps{
		Reservations:      stores.ReservationStore,
		Admins:            stores.AdminStore,
		Notify:            newNotifyDeps(),
		GenerateID:        generateID,
		Now:               timeNow,
		FallbackRecipient: notifyConfig.SecretariaFallback,
		FromAddress:       notifyConfig.FromAddress,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrEmailDelivery) {
			// The reservation is saved; only the notification failed.
			writeJSON(w, http.StatusBadGateway, map[string]any{
				"ID":             result.Reservation.ID,
				"Status":         result.Reservation.Status,
				"EmailDelivered": false,
			})
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"ID":             result.Reservation.ID,
		"Status":         result.Reservation.Status,
		"EmailDelivered": result.EmailDelivered,
	})
}

// handlePublicEquipmentLoan handles POST /api/public/equipment-loans
func handlePublicEquipmentLoan(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		FirstName    string `json:"FirstName"`
		LastName     string `json:"LastName"`
		Email        string `json:"Email"`
		Purpose      string `json:"Purpose"`
		Kind         string `json:"Kind"`
		Equipment    string `json:"Equipment"`
		StartTime    string `json:"StartTime"`
		EndTime      string `json:"EndTime"`
		CaptchaToken string `json:"CaptchaToken"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if !verifyCaptcha(r.Context(), input.CaptchaToken) {
		http.Error(w, "captcha verification failed", http.StatusBadRequest)
		return
	}
	start, okStart := parseRFC3339(input.StartTime)
	end, okEnd := parseRFC3339(input.EndTime)
	if !okStart || !okEnd {
		http.Error(w, "StartTime and EndTime must be RFC3339 timestamps", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteSubmitEquipmentLoan(r.Context(), orchestrators.SubmitEquipmentLoanInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Purpose:   input.Purpose,
		Kind:      input.Kind,
		Equipment: input.Equipment,
		StartTime: start,
		EndTime:   end,
	}, orchestrators.SubmitEquipmentLoanDeps{
		Reservations:      stores.ReservationStore,
		Laboratories:      stores.LaboratoryStore,
		Receipts:          receiptBuilder,
		Notify:            newNotifyDeps(),
		GenerateID:        generateID,
		Now:               timeNow,
		FallbackRecipient: notifyConfig.GenericFallback,
		FromAddress:       notifyConfig.FromAddress,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrEmailDelivery) {
			writeJSON(w, http.StatusBadGateway, map[string]any{
				"ID":             result.Reservation.ID,
				"Status":         result.Reservation.Status,
				"EmailDelivered": false,
			})
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"ID":             result.Reservation.ID,
		"Status":         result.Reservation.Status,
		"EmailDelivered": result.EmailDelivered,
	})
}

// handlePublicRepair handles POST /api/public/repairs
func handlePublicRepair(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var input struct {
		FirstName    string `json:"FirstName"`
		LastName     string `json:"LastName"`
		Email        string `json:"Email"`
		ProblemType  string `json:"ProblemType"`
		Description  string `json:"Description"`
		CaptchaToken string `json:"CaptchaToken"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if !verifyCaptcha(r.Context(), input.CaptchaToken) {
		http.Error(w, "captcha verification failed", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteSubmitRepair(r.Context(), orchestrators.SubmitRepairInput{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		ProblemType: input.ProblemType,
		Description: input.Description,
	}, orchestrators.SubmitRepairDeps{
		Repairs:            stores.RepairStore,
		Admins:             stores.AdminStore,
		Notify:             newNotifyDeps(),
		GenerateID:         generateID,
		Now:                timeNow,
		SecretariaFallback: notifyConfig.SecretariaFallback,
		TIFallback:         notifyConfig.TIFallback,
		FromAddress:        notifyConfig.FromAddress,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrEmailDelivery) {
			writeJSON(w, http.StatusBadGateway, map[string]any{
				"ID":             result.Request.ID,
				"Status":         result.Request.Status,
				"EmailDelivered": false,
			})
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"ID":             result.Request.ID,
		"Status":         result.Request.Status,
		"EmailDelivered": result.EmailDelivered,
	})
}

// newNotifyDeps bundles the shared email dispatch dependencies.
func newNotifyDeps() orchestrators.NotifyDeps {
	return orchestrators.NotifyDeps{
		Sender:     emailSender,
		Outbox:     stores.OutboxStore,
		GenerateID: generateID,
		Now:        timeNow,
	}
}

// publicResearcher is a Researcher with its bio rendered to HTML.
type publicResearcher struct {
	ID        string
	Name      string
	Title     string
	Email     string
	Areas     string
	BioHTML   string
	PhotoURL  string
	LattesURL string
}

// handleGetResearchers handles GET /api/researchers
// Bios are stored as markdown and rendered to sanitized HTML here.
func handleGetResearchers(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	list, err := stores.ResearcherStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]publicResearcher, 0, len(list))
	for _, res := range list {
		out = append(out, toPublicResearcher(res))
	}
	writeJSON(w, http.StatusOK, out)
}

func toPublicResearcher(res researcher.Researcher) publicResearcher {
	return publicResearcher{
		ID:        res.ID,
		Name:      res.Name,
		Title:     res.Title,
		Email:     res.Email,
		Areas:     res.Areas,
		BioHTML:   renderMarkdown(res.Bio),
		PhotoURL:  res.PhotoURL,
		LattesURL: res.LattesURL,
	}
}

// handleGetRoster handles GET /api/roster
// Members come back ordered by section and position, ready to display.
func handleGetRoster(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	members, err := stores.RosterStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	if members == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, members)
}
