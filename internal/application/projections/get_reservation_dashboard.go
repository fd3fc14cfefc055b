package projections

import (
	"context"
	"sort"

	"cpgg/internal/domain/report"
	"cpgg/internal/domain/reservation"
)

// TopRequesterCount caps the requester ranking on the dashboard.
const TopRequesterCount = 10

// ReservationLister is the read surface the dashboard needs.
type ReservationLister interface {
	ListAll(ctx context.Context) ([]reservation.Reservation, error)
}

// KindCount is the number of reservations for one kind.
type KindCount struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// RequesterCount ranks requesters by reservation volume.
type RequesterCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// MonthCount is the number of reservations created in one month.
type MonthCount struct {
	Month string `json:"month"` // "2006-01"
	Count int    `json:"count"`
}

// ReservationDashboard aggregates reservation data for the admin charts.
type ReservationDashboard struct {
	Total         int              `json:"total"`
	ByStatus      map[string]int   `json:"by_status"`
	ByKind        []KindCount      `json:"by_kind"`
	TopRequesters []RequesterCount `json:"top_requesters"`
	ByMonth       []MonthCount     `json:"by_month"`
}

// GetReservationDashboardDeps contains the dependencies for the projection.
type GetReservationDashboardDeps struct {
	Reservations ReservationLister
}

// ExecuteGetReservationDashboard computes the dashboard aggregates.
// PRE: deps.Reservations is non-nil
// POST: Returns counts by status, kind, requester (top 10) and month
// INVARIANT: requester names are display-sanitized, stored data untouched
func ExecuteGetReservationDashboard(ctx context.Context, deps GetReservationDashboardDeps) (ReservationDashboard, error) {
	all, err := deps.Reservations.ListAll(ctx)
	if err != nil {
		return ReservationDashboard{}, err
	}

	dash := ReservationDashboard{
		Total:    len(all),
		ByStatus: map[string]int{},
	}

	kindCounts := map[string]int{}
	requesterCounts := map[string]int{}
	monthCounts := map[string]int{}

	for _, r := range all {
		dash.ByStatus[r.Status]++
		kindCounts[r.Kind]++
		name := report.SanitizeDisplayName(r.RequesterName())
		if name != "" {
			requesterCounts[name]++
		}
		if !r.CreatedAt.IsZero() {
			monthCounts[r.CreatedAt.Format("2006-01")]++
		}
	}

	// Kinds in canonical order so chart colors stay stable.
	for _, kind := range reservation.ValidKinds {
		if n := kindCounts[kind]; n > 0 {
			dash.ByKind = append(dash.ByKind, KindCount{
				Kind:  kind,
				Label: reservation.KindLabel(kind),
				Count: n,
			})
		}
	}

	for name, n := range requesterCounts {
		dash.TopRequesters = append(dash.TopRequesters, RequesterCount{Name: name, Count: n})
	}
	sort.Slice(dash.TopRequesters, func(i, j int) bool {
		if dash.TopRequesters[i].Count != dash.TopRequesters[j].Count {
			return dash.TopRequesters[i].Count > dash.TopRequesters[j].Count
		}
		return dash.TopRequesters[i].Name < dash.TopRequesters[j].Name
	})
	if len(dash.TopRequesters) > TopRequesterCount {
		dash.TopRequesters = dash.TopRequesters[:TopRequesterCount]
	}

	for month, n := range monthCounts {
		dash.ByMonth = append(dash.ByMonth, MonthCount{Month: month, Count: n})
	}
	sort.Slice(dash.ByMonth, func(i, j int) bool {
		return dash.ByMonth[i].Month < dash.ByMonth[j].Month
	})

	return dash, nil
}
