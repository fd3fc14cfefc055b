package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cpgg/internal/adapters/captcha"
	emailAdapter "cpgg/internal/adapters/email"
	accountDomain "cpgg/internal/domain/account"
	"cpgg/internal/domain/admin"
	domainOutbox "cpgg/internal/domain/outbox"
	"cpgg/internal/domain/repair"
	"cpgg/internal/domain/reservation"
	"cpgg/internal/domain/roster"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
}

func newIDGen() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// --- account / grant mocks ---

type mockAccountStore struct {
	accounts map[string]accountDomain.Account // by email
	saved    []accountDomain.Account
}

func (m *mockAccountStore) GetByEmail(_ context.Context, email string) (accountDomain.Account, error) {
	a, ok := m.accounts[email]
	if !ok {
		return accountDomain.Account{}, sql.ErrNoRows
	}
	return a, nil
}

func (m *mockAccountStore) Save(_ context.Context, a accountDomain.Account) error {
	if m.accounts == nil {
		m.accounts = map[string]accountDomain.Account{}
	}
	m.accounts[a.Email] = a
	m.saved = append(m.saved, a)
	return nil
}

type mockGrantStore struct {
	grants map[string]admin.Grant // by account ID
	saved  []admin.Grant
}

func (m *mockGrantStore) GetByAccountID(_ context.Context, accountID string) (admin.Grant, error) {
	g, ok := m.grants[accountID]
	if !ok {
		return admin.Grant{}, sql.ErrNoRows
	}
	return g, nil
}

func (m *mockGrantStore) Save(_ context.Context, g admin.Grant) error {
	if m.grants == nil {
		m.grants = map[string]admin.Grant{}
	}
	m.grants[g.AccountID] = g
	m.saved = append(m.saved, g)
	return nil
}

func (m *mockGrantStore) GetEmailByRole(_ context.Context, role string) (string, error) {
	for _, g := range m.grants {
		if g.Role == role {
			return g.Email, nil
		}
	}
	return "", sql.ErrNoRows
}

// --- reservation mock ---

type mockReservationStore struct {
	byID    map[string]reservation.Reservation
	saveErr error
}

func newMockReservationStore() *mockReservationStore {
	return &mockReservationStore{byID: map[string]reservation.Reservation{}}
}

func (m *mockReservationStore) GetByID(_ context.Context, id string) (reservation.Reservation, error) {
	r, ok := m.byID[id]
	if !ok {
		return reservation.Reservation{}, sql.ErrNoRows
	}
	return r, nil
}

func (m *mockReservationStore) Save(_ context.Context, r reservation.Reservation) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.byID[r.ID] = r
	return nil
}

func (m *mockReservationStore) Delete(_ context.Context, ids []string) error {
	for _, id := range ids {
		delete(m.byID, id)
	}
	return nil
}

func (m *mockReservationStore) ListAll(_ context.Context) ([]reservation.Reservation, error) {
	var out []reservation.Reservation
	for _, r := range m.byID {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockReservationStore) ListByKinds(_ context.Context, kinds []string) ([]reservation.Reservation, error) {
	var out []reservation.Reservation
	for _, r := range m.byID {
		for _, k := range kinds {
			if r.Kind == k {
				out = append(out, r)
				break
			}
		}
	}
	return out, nil
}

// --- repair mock ---

type mockRepairStore struct {
	byID map[string]repair.Request
}

func newMockRepairStore() *mockRepairStore {
	return &mockRepairStore{byID: map[string]repair.Request{}}
}

func (m *mockRepairStore) GetByID(_ context.Context, id string) (repair.Request, error) {
	r, ok := m.byID[id]
	if !ok {
		return repair.Request{}, sql.ErrNoRows
	}
	return r, nil
}

func (m *mockRepairStore) Save(_ context.Context, r repair.Request) error {
	m.byID[r.ID] = r
	return nil
}

func (m *mockRepairStore) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

// --- roster mock ---

type mockRosterStore struct {
	byID map[string]roster.Member
}

func newMockRosterStore() *mockRosterStore {
	return &mockRosterStore{byID: map[string]roster.Member{}}
}

func (m *mockRosterStore) GetByID(_ context.Context, id string) (roster.Member, error) {
	r, ok := m.byID[id]
	if !ok {
		return roster.Member{}, sql.ErrNoRows
	}
	return r, nil
}

func (m *mockRosterStore) Save(_ context.Context, r roster.Member) error {
	m.byID[r.ID] = r
	return nil
}

func (m *mockRosterStore) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

// --- email / outbox mocks ---

type mockSender struct {
	sent []emailAdapter.SendRequest
	err  error
}

func (m *mockSender) Send(_ context.Context, req emailAdapter.SendRequest) (emailAdapter.SendResult, error) {
	if m.err != nil {
		return emailAdapter.SendResult{}, m.err
	}
	m.sent = append(m.sent, req)
	return emailAdapter.SendResult{MessageID: "msg-1", SentAt: fixedNow()}, nil
}

type mockOutboxStore struct {
	entries map[string]domainOutbox.Entry
}

func newMockOutboxStore() *mockOutboxStore {
	return &mockOutboxStore{entries: map[string]domainOutbox.Entry{}}
}

func (m *mockOutboxStore) GetByID(_ context.Context, id string) (domainOutbox.Entry, error) {
	e, ok := m.entries[id]
	if !ok {
		return domainOutbox.Entry{}, sql.ErrNoRows
	}
	return e, nil
}

func (m *mockOutboxStore) Save(_ context.Context, e domainOutbox.Entry) error {
	m.entries[e.ID] = e
	return nil
}

func (m *mockOutboxStore) ListPending(_ context.Context, limit int) ([]domainOutbox.Entry, error) {
	var out []domainOutbox.Entry
	for _, e := range m.entries {
		if e.CanRetry() && (e.Status == domainOutbox.StatusPending || e.Status == domainOutbox.StatusRetrying) {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockOutboxStore) ListFailed(_ context.Context, limit int) ([]domainOutbox.Entry, error) {
	var out []domainOutbox.Entry
	for _, e := range m.entries {
		if e.Status == domainOutbox.StatusFailed {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockOutboxStore) Delete(_ context.Context, id string) error {
	delete(m.entries, id)
	return nil
}

// --- captcha mock ---

type mockVerifier struct {
	success bool
	err     error
}

func (m *mockVerifier) Verify(_ context.Context, _ string) (captcha.Result, error) {
	if m.err != nil {
		return captcha.Result{}, m.err
	}
	return captcha.Result{Success: m.success}, nil
}

var errTransport = errors.New("connection refused")
