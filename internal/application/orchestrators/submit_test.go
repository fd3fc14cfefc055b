package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cpgg/internal/domain/admin"
	"cpgg/internal/domain/laboratory"
	domainOutbox "cpgg/internal/domain/outbox"
	"cpgg/internal/domain/repair"
	"cpgg/internal/domain/reservation"
)

type mockLabLookup struct {
	labs map[string]laboratory.Laboratory
}

func (m *mockLabLookup) GetByAcronym(_ context.Context, acronym string) (laboratory.Laboratory, error) {
	l, ok := m.labs[acronym]
	if !ok {
		return laboratory.Laboratory{}, errTransport
	}
	return l, nil
}

type mockReceipts struct{ built int }

func (m *mockReceipts) Build(_ reservation.Reservation) ([]byte, error) {
	m.built++
	return []byte("%PDF-fake"), nil
}

func notifyDeps(sender *mockSender, ob *mockOutboxStore) NotifyDeps {
	return NotifyDeps{Sender: sender, Outbox: ob, GenerateID: newIDGen(), Now: fixedNow}
}

func reservationInput() SubmitReservationInput {
	return SubmitReservationInput{
		FirstName: "Ana", LastName: "Souza", Email: "ana@example.com",
		Purpose: "Defesa", Kind: reservation.KindAuditorio,
		StartTime: fixedNow().Add(24 * time.Hour),
		EndTime:   fixedNow().Add(26 * time.Hour),
	}
}

func TestSubmitReservationNotifiesSecretaria(t *testing.T) {
	store := newMockReservationStore()
	sender := &mockSender{}
	grants := &mockGrantStore{grants: map[string]admin.Grant{
		"a1": {ID: "g1", AccountID: "a1", Email: "sec@cpgg.ufba.br", Role: admin.RoleSecretaria},
	}}
	deps := SubmitReservationDeps{
		Reservations: store, Admins: grants,
		Notify:     notifyDeps(sender, newMockOutboxStore()),
		GenerateID: newIDGen(), Now: fixedNow,
		FallbackRecipient: "fallback@cpgg.ufba.br",
		FromAddress:       "CPGG <noreply@cpgg.ufba.br>",
	}

	result, err := ExecuteSubmitReservation(context.Background(), reservationInput(), deps)
	if err != nil {
		t.Fatalf("ExecuteSubmitReservation() = %v", err)
	}
	if !result.EmailDelivered {
		t.Error("EmailDelivered = false")
	}
	if result.Reservation.Status != reservation.StatusPendente {
		t.Errorf("status = %q, want pendente", result.Reservation.Status)
	}
	if len(sender.sent) != 1 || sender.sent[0].To[0] != "sec@cpgg.ufba.br" {
		t.Errorf("sent = %+v", sender.sent)
	}
	if !strings.Contains(sender.sent[0].HTML, "Ana Souza") {
		t.Error("email body missing requester name")
	}
}

func TestSubmitReservationFallbackRecipient(t *testing.T) {
	sender := &mockSender{}
	deps := SubmitReservationDeps{
		Reservations: newMockReservationStore(),
		Admins:       &mockGrantStore{},
		Notify:       notifyDeps(sender, newMockOutboxStore()),
		GenerateID:   newIDGen(), Now: fixedNow,
		FallbackRecipient: "fallback@cpgg.ufba.br",
	}

	if _, err := ExecuteSubmitReservation(context.Background(), reservationInput(), deps); err != nil {
		t.Fatalf("ExecuteSubmitReservation() = %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0].To[0] != "fallback@cpgg.ufba.br" {
		t.Errorf("sent = %+v, want fallback recipient", sender.sent)
	}
}

func TestSubmitReservationPersistsDespiteEmailFailure(t *testing.T) {
	store := newMockReservationStore()
	ob := newMockOutboxStore()
	deps := SubmitReservationDeps{
		Reservations: store,
		Admins:       &mockGrantStore{},
		Notify:       notifyDeps(&mockSender{err: errTransport}, ob),
		GenerateID:   newIDGen(), Now: fixedNow,
		FallbackRecipient: "fallback@cpgg.ufba.br",
	}

	result, err := ExecuteSubmitReservation(context.Background(), reservationInput(), deps)
	if !errors.Is(err, ErrEmailDelivery) {
		t.Fatalf("ExecuteSubmitReservation() = %v, want ErrEmailDelivery", err)
	}
	if result.EmailDelivered {
		t.Error("EmailDelivered = true despite transport failure")
	}
	if result.Reservation.ID == "" {
		t.Error("persisted reservation not returned with the error")
	}
	if len(store.byID) != 1 {
		t.Error("reservation not persisted")
	}
	if len(ob.entries) != 1 {
		t.Fatalf("outbox has %d entries, want 1", len(ob.entries))
	}
	for _, e := range ob.entries {
		if e.ActionType != domainOutbox.ActionTypeEmail || e.Status != domainOutbox.StatusPending {
			t.Errorf("outbox entry = %+v", e)
		}
	}
}

func TestSubmitReservationRejectsLaboratoryKind(t *testing.T) {
	deps := SubmitReservationDeps{
		Reservations: newMockReservationStore(),
		Admins:       &mockGrantStore{},
		Notify:       notifyDeps(&mockSender{}, newMockOutboxStore()),
		GenerateID:   newIDGen(), Now: fixedNow,
	}
	input := reservationInput()
	input.Kind = reservation.KindLagep

	if _, err := ExecuteSubmitReservation(context.Background(), input, deps); err != reservation.ErrInvalidKind {
		t.Errorf("ExecuteSubmitReservation(lagep) = %v, want ErrInvalidKind", err)
	}
}

func TestSubmitEquipmentLoanLaigaAttachesReceipt(t *testing.T) {
	sender := &mockSender{}
	receipts := &mockReceipts{}
	deps := SubmitEquipmentLoanDeps{
		Reservations: newMockReservationStore(),
		Laboratories: &mockLabLookup{labs: map[string]laboratory.Laboratory{
			"LAIGA": {ID: "l1", Acronym: "LAIGA", Name: "x", ChiefEmail: "chefe@cpgg.ufba.br"},
		}},
		Receipts:   receipts,
		Notify:     notifyDeps(sender, newMockOutboxStore()),
		GenerateID: newIDGen(), Now: fixedNow,
		FallbackRecipient: "fallback@cpgg.ufba.br",
	}

	result, err := ExecuteSubmitEquipmentLoan(context.Background(), SubmitEquipmentLoanInput{
		FirstName: "Ana", Email: "ana@example.com", Purpose: "Campo",
		Kind: reservation.KindLaigaEquipment, Equipment: "Sismógrafo",
		StartTime: fixedNow(), EndTime: fixedNow().Add(48 * time.Hour),
	}, deps)
	if err != nil {
		t.Fatalf("ExecuteSubmitEquipmentLoan() = %v", err)
	}
	if !result.EmailDelivered {
		t.Error("EmailDelivered = false")
	}
	if receipts.built != 1 {
		t.Errorf("receipts built = %d, want 1", receipts.built)
	}
	if len(sender.sent) != 1 || len(sender.sent[0].Attachments) != 1 {
		t.Fatalf("sent = %+v, want one email with one attachment", sender.sent)
	}
	if sender.sent[0].To[0] != "chefe@cpgg.ufba.br" {
		t.Errorf("recipient = %q, want laboratory chief", sender.sent[0].To[0])
	}
}

func TestSubmitEquipmentLoanOtherLabsNoReceipt(t *testing.T) {
	sender := &mockSender{}
	receipts := &mockReceipts{}
	deps := SubmitEquipmentLoanDeps{
		Reservations: newMockReservationStore(),
		Laboratories: &mockLabLookup{},
		Receipts:     receipts,
		Notify:       notifyDeps(sender, newMockOutboxStore()),
		GenerateID:   newIDGen(), Now: fixedNow,
		FallbackRecipient: "fallback@cpgg.ufba.br",
	}

	if _, err := ExecuteSubmitEquipmentLoan(context.Background(), SubmitEquipmentLoanInput{
		FirstName: "Ana", Email: "ana@example.com", Purpose: "Campo",
		Kind:      reservation.KindLagep,
		StartTime: fixedNow(), EndTime: fixedNow().Add(time.Hour),
	}, deps); err != nil {
		t.Fatalf("ExecuteSubmitEquipmentLoan() = %v", err)
	}
	if receipts.built != 0 {
		t.Error("receipt built for non-LAIGA laboratory")
	}
	if len(sender.sent) != 1 || sender.sent[0].To[0] != "fallback@cpgg.ufba.br" {
		t.Errorf("sent = %+v, want fallback (lab lookup failed)", sender.sent)
	}
}

func TestSubmitRepairRouting(t *testing.T) {
	tests := []struct {
		name        string
		problemType string
		wantTo      string
	}{
		{"infrastructure goes to secretaria", repair.ProblemInfraestrutura, "sec@cpgg.ufba.br"},
		{"ti goes to technician", repair.ProblemTI, "ti-fallback@cpgg.ufba.br"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &mockSender{}
			grants := &mockGrantStore{grants: map[string]admin.Grant{
				"a1": {ID: "g1", AccountID: "a1", Email: "sec@cpgg.ufba.br", Role: admin.RoleSecretaria},
			}}
			deps := SubmitRepairDeps{
				Repairs: newMockRepairStore(),
				Admins:  grants,
				Notify:  notifyDeps(sender, newMockOutboxStore()),
				GenerateID: newIDGen(), Now: fixedNow,
				SecretariaFallback: "sec-fallback@cpgg.ufba.br",
				TIFallback:         "ti-fallback@cpgg.ufba.br",
			}

			result, err := ExecuteSubmitRepair(context.Background(), SubmitRepairInput{
				FirstName: "Carlos", Email: "c@example.com",
				ProblemType: tt.problemType, Description: "quebrou",
			}, deps)
			if err != nil {
				t.Fatalf("ExecuteSubmitRepair() = %v", err)
			}
			if result.Request.Status != repair.StatusPendente {
				t.Errorf("status = %q", result.Request.Status)
			}
			if len(sender.sent) != 1 || sender.sent[0].To[0] != tt.wantTo {
				t.Errorf("sent to %+v, want %q", sender.sent, tt.wantTo)
			}
		})
	}
}
