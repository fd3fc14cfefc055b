package reservation

import (
	"testing"
	"time"
)

func validReservation() Reservation {
	return Reservation{
		ID:        "res-1",
		FirstName: "Ana",
		LastName:  "Souza",
		Email:     "ana@example.com",
		Purpose:   "Defesa de dissertação",
		Kind:      KindAuditorio,
		StartTime: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		Status:    StatusPendente,
		CreatedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestReservationValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Reservation)
		wantErr error
	}{
		{"valid", func(r *Reservation) {}, nil},
		{"empty first name", func(r *Reservation) { r.FirstName = "  " }, ErrEmptyFirstName},
		{"empty email", func(r *Reservation) { r.Email = "" }, ErrEmptyEmail},
		{"email without at sign", func(r *Reservation) { r.Email = "ana.example.com" }, ErrInvalidEmail},
		{"empty purpose", func(r *Reservation) { r.Purpose = "" }, ErrEmptyPurpose},
		{"unknown kind", func(r *Reservation) { r.Kind = "quadra" }, ErrInvalidKind},
		{"unknown status", func(r *Reservation) { r.Status = "cancelada" }, ErrInvalidStatus},
		{"zero start time", func(r *Reservation) { r.StartTime = time.Time{} }, ErrZeroTimeWindow},
		{"zero end time", func(r *Reservation) { r.EndTime = time.Time{} }, ErrZeroTimeWindow},
		{"missing last name is fine", func(r *Reservation) { r.LastName = "" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validReservation()
			tt.mutate(&r)
			if err := r.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReservationSetStatus(t *testing.T) {
	r := validReservation()

	if err := r.SetStatus(StatusAprovada); err != nil {
		t.Fatalf("SetStatus(aprovada) = %v, want nil", err)
	}
	if r.Status != StatusAprovada {
		t.Errorf("Status = %q, want %q", r.Status, StatusAprovada)
	}

	if err := r.SetStatus("arquivada"); err != ErrInvalidStatus {
		t.Errorf("SetStatus(arquivada) = %v, want ErrInvalidStatus", err)
	}
	if r.Status != StatusAprovada {
		t.Errorf("Status mutated on rejected transition: %q", r.Status)
	}
}

func TestReservationCategory(t *testing.T) {
	tests := []struct {
		kind string
		want string
	}{
		{KindAuditorio, CategoryPhysical},
		{KindSalaReuniao, CategoryPhysical},
		{KindLaigaEquipment, CategoryLaboratory},
		{KindLagep, CategoryLaboratory},
		{KindLamod, CategoryLaboratory},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			r := validReservation()
			r.Kind = tt.kind
			if got := r.Category(); got != tt.want {
				t.Errorf("Category() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequesterName(t *testing.T) {
	tests := []struct {
		name  string
		first string
		last  string
		want  string
	}{
		{"both names", "Ana", "Souza", "Ana Souza"},
		{"first only", "Ana", "", "Ana"},
		{"padded", " Ana ", "", "Ana"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Reservation{FirstName: tt.first, LastName: tt.last}
			if got := r.RequesterName(); got != tt.want {
				t.Errorf("RequesterName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindLabel(t *testing.T) {
	tests := []struct {
		kind string
		want string
	}{
		{KindAuditorio, "Auditório"},
		{KindSalaReuniao, "Sala de Reuniões"},
		{KindLaigaEquipment, "LAIGA"},
		{KindLagep, "LAGEP"},
		{KindLamod, "LAMOD"},
	}

	for _, tt := range tests {
		if got := KindLabel(tt.kind); got != tt.want {
			t.Errorf("KindLabel(%q) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKindsForCategory(t *testing.T) {
	tests := []struct {
		category string
		wantLen  int
	}{
		{CategoryPhysical, 2},
		{CategoryLaboratory, 3},
		{CategoryAll, 5},
		{KindAuditorio, 1},
		{"unknown", 0},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			if got := KindsForCategory(tt.category); len(got) != tt.wantLen {
				t.Errorf("KindsForCategory(%q) returned %d kinds, want %d", tt.category, len(got), tt.wantLen)
			}
		})
	}
}
