package repair

import (
	"testing"
	"time"
)

func validRequest() Request {
	return Request{
		ID:          "rep-1",
		FirstName:   "Carlos",
		LastName:    "Lima",
		Email:       "carlos@example.com",
		ProblemType: ProblemInfraestrutura,
		Description: "Ar-condicionado da sala 12 não liga",
		Status:      StatusPendente,
		CreatedAt:   time.Now(),
	}
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"valid", func(r *Request) {}, nil},
		{"empty first name", func(r *Request) { r.FirstName = "" }, ErrEmptyFirstName},
		{"empty email", func(r *Request) { r.Email = " " }, ErrEmptyEmail},
		{"empty description", func(r *Request) { r.Description = "" }, ErrEmptyDescription},
		{"unknown problem type", func(r *Request) { r.ProblemType = "eletrica" }, ErrInvalidProblem},
		{"unknown status", func(r *Request) { r.Status = "fechada" }, ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.mutate(&r)
			if err := r.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDepartment(t *testing.T) {
	r := validRequest()
	if got := r.Department(); got != "Secretaria (Infraestrutura)" {
		t.Errorf("Department(infraestrutura) = %q", got)
	}
	r.ProblemType = ProblemTI
	if got := r.Department(); got != "T.I." {
		t.Errorf("Department(ti) = %q", got)
	}
}
