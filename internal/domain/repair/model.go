package repair

import (
	"errors"
	"strings"
	"time"
)

// Problem type constants. Infrastructure problems are routed to the
// secretariat, everything else to the IT technician.
const (
	ProblemInfraestrutura = "infraestrutura"
	ProblemTI             = "ti"
)

// Status constants for the repair request lifecycle.
const (
	StatusPendente  = "pendente"
	StatusResolvida = "resolvida"
)

// Domain errors
var (
	ErrEmptyFirstName   = errors.New("first name is required")
	ErrEmptyEmail       = errors.New("email is required")
	ErrEmptyDescription = errors.New("problem description is required")
	ErrInvalidProblem   = errors.New("problem type must be infraestrutura or ti")
	ErrInvalidStatus    = errors.New("status must be pendente or resolvida")
)

// Request is a repair request submitted through the public form.
type Request struct {
	ID          string
	FirstName   string
	LastName    string
	Email       string
	ProblemType string
	Description string
	Status      string
	CreatedAt   time.Time
}

// Validate checks that the Request has valid data.
// PRE: Request struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Request) Validate() error {
	if strings.TrimSpace(r.FirstName) == "" {
		return ErrEmptyFirstName
	}
	if strings.TrimSpace(r.Email) == "" {
		return ErrEmptyEmail
	}
	if strings.TrimSpace(r.Description) == "" {
		return ErrEmptyDescription
	}
	if r.ProblemType != ProblemInfraestrutura && r.ProblemType != ProblemTI {
		return ErrInvalidProblem
	}
	if r.Status != StatusPendente && r.Status != StatusResolvida {
		return ErrInvalidStatus
	}
	return nil
}

// Department returns the label of the department responsible for the request.
// INVARIANT: Request fields are not mutated
func (r *Request) Department() string {
	if r.ProblemType == ProblemInfraestrutura {
		return "Secretaria (Infraestrutura)"
	}
	return "T.I."
}
