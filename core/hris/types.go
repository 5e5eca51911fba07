package hris

import "time"

// RefSummary is the rank/department/position summary nested inside an
// employee record. All fields are optional: some upstream tenants reference
// enrichment by business code only, leaving the identifier empty.
type RefSummary struct {
	ExternalID *string `json:"externalId,omitempty"`
	Code       *string `json:"code,omitempty"`
	Name       *string `json:"name,omitempty"`
	Level      *int    `json:"level,omitempty"`
}

// Present reports whether the summary carries any enrichment at all.
func (r *RefSummary) Present() bool {
	if r == nil {
		return false
	}
	return r.ExternalID != nil || r.Name != nil || r.Code != nil
}

// Employee is the authoritative upstream representation of one employee.
// Owned by the upstream system; read-only here. Optional fields are pointers
// so "not provided this sync" is distinguishable from a genuine zero value.
type Employee struct {
	ExternalID        string      `json:"externalId"`
	EmployeeNo        string      `json:"employeeNo"`
	Name              string      `json:"name"`
	Email             string      `json:"email"`
	Phone             *string     `json:"phone,omitempty"`
	BirthDate         *time.Time  `json:"birthDate,omitempty"`
	Gender            *string     `json:"gender,omitempty"`
	HireDate          *time.Time  `json:"hireDate,omitempty"`
	ManagerExternalID *string     `json:"managerExternalId,omitempty"`
	Status            string      `json:"status"`
	UpdatedAt         *time.Time  `json:"updatedAt,omitempty"`
	Rank              *RefSummary `json:"rank,omitempty"`
	Department        *RefSummary `json:"department,omitempty"`
	Position          *RefSummary `json:"position,omitempty"`
}

// DisplayName returns the label used when reporting per-record sync errors.
func (e *Employee) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.ExternalID
}

// RefEntry is one rank or department reference entry. The full set is
// replaced wholesale on every cache refresh; entries are never mutated.
type RefEntry struct {
	ExternalID       string  `json:"externalId"`
	Code             string  `json:"code"`
	Name             string  `json:"name"`
	Level            int     `json:"level"`
	ParentExternalID *string `json:"parentExternalId,omitempty"`
}
