package web

import "net/http"

// registerRoutes attaches every API handler to the mux. Role gating happens
// inside the handlers so each one can log the denial with its own context.
func registerRoutes(mux *http.ServeMux) {
	// Public submission endpoints (captcha-gated)
	mux.HandleFunc("/api/public/reservations", handlePublicReservation)
	mux.HandleFunc("/api/public/equipment-loans", handlePublicEquipmentLoan)
	mux.HandleFunc("/api/public/repairs", handlePublicRepair)

	// Public reads
	mux.HandleFunc("/api/researchers", handleGetResearchers)
	mux.HandleFunc("/api/roster", handleGetRoster)

	// Admin auth
	mux.HandleFunc("/api/admin/login", handleAdminLogin)
	mux.HandleFunc("/api/admin/logout", handleAdminLogout)
	mux.HandleFunc("/api/admin/session", handleAdminSession)

	// Reservation back office
	mux.HandleFunc("/api/admin/reservations", handleAdminReservations)
	mux.HandleFunc("/api/admin/reservations/update", handleUpdateReservation)
	mux.HandleFunc("/api/admin/reservations/status", handleReservationStatus)
	mux.HandleFunc("/api/admin/reservations/delete", handleDeleteReservations)
	mux.HandleFunc("/api/admin/reservations/undo", handleUndoDeleteReservations)
	mux.HandleFunc("/api/admin/reservations/export", handleExportReport)
	mux.HandleFunc("/api/admin/dashboard/reservations", handleReservationDashboard)

	// Roster back office
	mux.HandleFunc("/api/admin/roster/save", handleSaveRosterMember)
	mux.HandleFunc("/api/admin/roster/delete", handleDeleteRosterMember)
	mux.HandleFunc("/api/admin/roster/undo", handleUndoDeleteRosterMember)

	// Researcher profiles back office
	mux.HandleFunc("/api/admin/researchers/save", handleSaveResearcher)
	mux.HandleFunc("/api/admin/researchers/delete", handleDeleteResearcher)

	// Repair requests back office
	mux.HandleFunc("/api/admin/repairs", handleAdminRepairs)
	mux.HandleFunc("/api/admin/repairs/status", handleRepairStatus)
	mux.HandleFunc("/api/admin/repairs/delete", handleDeleteRepair)

	// Outbox administration
	mux.HandleFunc("/api/admin/outbox", handleAdminOutbox)
	mux.HandleFunc("/api/admin/outbox/retry", handleOutboxRetry)

	// Operational
	mux.HandleFunc("/api/admin/perf", handlePerfSnapshot)
	mux.HandleFunc("/healthz", handleHealthz)
}
