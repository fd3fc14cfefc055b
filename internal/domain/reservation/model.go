package reservation

import (
	"errors"
	"strings"
	"time"
)

// Reservation kind constants. Physical spaces and laboratory equipment sets
// share one table and one admin area, split into two report sections.
const (
	KindAuditorio      = "auditorio"
	KindSalaReuniao    = "sala_reuniao"
	KindLaigaEquipment = "laiga_equipments"
	KindLagep          = "lagep"
	KindLamod          = "lamod"
)

// Status constants for the reservation lifecycle.
const (
	StatusPendente  = "pendente"
	StatusAprovada  = "aprovada"
	StatusRejeitada = "rejeitada"
)

// Category constants for bulk operations and report sections.
const (
	CategoryPhysical   = "physical"
	CategoryLaboratory = "laboratory"
	CategoryAll        = "all"
)

// PhysicalKinds are the reservation kinds counted as physical spaces.
var PhysicalKinds = []string{KindAuditorio, KindSalaReuniao}

// LaboratoryKinds are the reservation kinds counted as laboratories.
var LaboratoryKinds = []string{KindLaigaEquipment, KindLagep, KindLamod}

// ValidKinds contains all valid reservation kinds.
var ValidKinds = []string{KindAuditorio, KindSalaReuniao, KindLaigaEquipment, KindLagep, KindLamod}

// ValidStatuses contains all valid status values.
var ValidStatuses = []string{StatusPendente, StatusAprovada, StatusRejeitada}

// Domain errors
var (
	ErrEmptyFirstName = errors.New("first name is required")
	ErrEmptyEmail     = errors.New("email is required")
	ErrInvalidEmail   = errors.New("email must contain '@'")
	ErrEmptyPurpose   = errors.New("purpose is required")
	ErrInvalidKind    = errors.New("unknown reservation kind")
	ErrInvalidStatus  = errors.New("status must be one of: pendente, aprovada, rejeitada")
	ErrZeroTimeWindow = errors.New("start and end times are required")
)

// Reservation is a request to use a physical space or laboratory equipment.
// Overlapping windows for the same resource are not rejected; the secretariat
// resolves conflicts when approving.
type Reservation struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Purpose   string
	Kind      string
	Equipment string // optional, laboratory kinds only
	StartTime time.Time
	EndTime   time.Time
	Status    string
	CreatedAt time.Time
}

// Validate checks that the Reservation has valid data.
// PRE: Reservation struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Reservation) Validate() error {
	if strings.TrimSpace(r.FirstName) == "" {
		return ErrEmptyFirstName
	}
	if strings.TrimSpace(r.Email) == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(r.Email, "@") {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(r.Purpose) == "" {
		return ErrEmptyPurpose
	}
	if !IsValidKind(r.Kind) {
		return ErrInvalidKind
	}
	if !IsValidStatus(r.Status) {
		return ErrInvalidStatus
	}
	if r.StartTime.IsZero() || r.EndTime.IsZero() {
		return ErrZeroTimeWindow
	}
	return nil
}

// RequesterName returns the requester's full display name.
// INVARIANT: Reservation fields are not mutated
func (r *Reservation) RequesterName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// SetStatus transitions the reservation to a new status.
// PRE: newStatus is a valid status value
// POST: Status is updated
func (r *Reservation) SetStatus(newStatus string) error {
	if !IsValidStatus(newStatus) {
		return ErrInvalidStatus
	}
	r.Status = newStatus
	return nil
}

// Category returns the category the reservation's kind belongs to.
// INVARIANT: Reservation fields are not mutated
func (r *Reservation) Category() string {
	for _, k := range PhysicalKinds {
		if r.Kind == k {
			return CategoryPhysical
		}
	}
	return CategoryLaboratory
}

// KindLabel returns the human-readable label for a reservation kind.
func KindLabel(kind string) string {
	switch kind {
	case KindAuditorio:
		return "Auditório"
	case KindSalaReuniao:
		return "Sala de Reuniões"
	case KindLaigaEquipment:
		return "LAIGA"
	default:
		return strings.ToUpper(kind)
	}
}

// KindsForCategory returns the kinds covered by a bulk-delete category.
// A specific kind is its own category of one.
func KindsForCategory(category string) []string {
	switch category {
	case CategoryPhysical:
		return PhysicalKinds
	case CategoryLaboratory:
		return LaboratoryKinds
	case CategoryAll:
		return ValidKinds
	default:
		if IsValidKind(category) {
			return []string{category}
		}
		return nil
	}
}

// IsValidKind reports whether kind is a known reservation kind.
func IsValidKind(kind string) bool {
	for _, k := range ValidKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether status is a known status value.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}
