package projections

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"cpgg/internal/domain/reservation"
)

type stubLister struct {
	reservations []reservation.Reservation
	err          error
}

func (s *stubLister) ListAll(_ context.Context) ([]reservation.Reservation, error) {
	return s.reservations, s.err
}

func res(first, kind, status string, created time.Time) reservation.Reservation {
	return reservation.Reservation{
		FirstName: first,
		Email:     "x@y.z",
		Kind:      kind,
		Status:    status,
		CreatedAt: created,
	}
}

func TestDashboardAggregates(t *testing.T) {
	march := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 5, 10, 0, 0, 0, time.UTC)

	lister := &stubLister{reservations: []reservation.Reservation{
		res("Ana", reservation.KindAuditorio, reservation.StatusPendente, march),
		res("Ana", reservation.KindAuditorio, reservation.StatusAprovada, march),
		res("Bruno", reservation.KindLagep, reservation.StatusPendente, april),
	}}

	dash, err := ExecuteGetReservationDashboard(context.Background(), GetReservationDashboardDeps{Reservations: lister})
	if err != nil {
		t.Fatalf("ExecuteGetReservationDashboard() = %v", err)
	}

	if dash.Total != 3 {
		t.Errorf("Total = %d, want 3", dash.Total)
	}
	if dash.ByStatus[reservation.StatusPendente] != 2 {
		t.Errorf("ByStatus[pendente] = %d, want 2", dash.ByStatus[reservation.StatusPendente])
	}
	if len(dash.ByKind) != 2 || dash.ByKind[0].Kind != reservation.KindAuditorio || dash.ByKind[0].Count != 2 {
		t.Errorf("ByKind = %+v", dash.ByKind)
	}
	if len(dash.TopRequesters) != 2 || dash.TopRequesters[0].Name != "Ana" || dash.TopRequesters[0].Count != 2 {
		t.Errorf("TopRequesters = %+v", dash.TopRequesters)
	}
	if len(dash.ByMonth) != 2 || dash.ByMonth[0].Month != "2026-03" || dash.ByMonth[0].Count != 2 {
		t.Errorf("ByMonth = %+v", dash.ByMonth)
	}
}

func TestDashboardSanitizesRequesterNames(t *testing.T) {
	lister := &stubLister{reservations: []reservation.Reservation{
		res("[LAIGA] Ana", reservation.KindLaigaEquipment, reservation.StatusPendente, time.Now()),
		res("Ana", reservation.KindLagep, reservation.StatusPendente, time.Now()),
	}}

	dash, err := ExecuteGetReservationDashboard(context.Background(), GetReservationDashboardDeps{Reservations: lister})
	if err != nil {
		t.Fatalf("ExecuteGetReservationDashboard() = %v", err)
	}
	if len(dash.TopRequesters) != 1 || dash.TopRequesters[0].Count != 2 {
		t.Errorf("sanitized names not merged: %+v", dash.TopRequesters)
	}
}

func TestDashboardCapsTopRequesters(t *testing.T) {
	var list []reservation.Reservation
	for i := 0; i < 15; i++ {
		list = append(list, res(fmt.Sprintf("Pessoa%d", i), reservation.KindAuditorio, reservation.StatusPendente, time.Now()))
	}
	lister := &stubLister{reservations: list}

	dash, err := ExecuteGetReservationDashboard(context.Background(), GetReservationDashboardDeps{Reservations: lister})
	if err != nil {
		t.Fatalf("ExecuteGetReservationDashboard() = %v", err)
	}
	if len(dash.TopRequesters) != TopRequesterCount {
		t.Errorf("TopRequesters has %d entries, want %d", len(dash.TopRequesters), TopRequesterCount)
	}
}

func TestDashboardStoreError(t *testing.T) {
	lister := &stubLister{err: errors.New("db down")}
	if _, err := ExecuteGetReservationDashboard(context.Background(), GetReservationDashboardDeps{Reservations: lister}); err == nil {
		t.Error("expected error from store")
	}
}
