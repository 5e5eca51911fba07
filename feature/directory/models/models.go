package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is the locally persisted employee record. It is created by the
// sync orchestrator on first sight of a new external identifier, mutated only
// by synchronization, and never deleted by it: records whose external id
// disappears upstream are retained.
//
// Rank and department fields are denormalized copies taken at sync time, not
// live joins. Nullable columns distinguish "genuinely empty" from "not
// provided this sync".
type Employee struct {
	ID         string `gorm:"type:char(36);primaryKey" json:"id"`
	ExternalID string `gorm:"size:64;uniqueIndex;not null" json:"external_id"`
	EmployeeNo string `gorm:"size:32;uniqueIndex;not null" json:"employee_no"`
	Email      string `gorm:"size:255;uniqueIndex;not null" json:"email"`

	Name              string     `gorm:"size:128;not null" json:"name"`
	Phone             *string    `gorm:"size:32" json:"phone,omitempty"`
	BirthDate         *time.Time `json:"birth_date,omitempty"`
	Gender            *string    `gorm:"size:16" json:"gender,omitempty"`
	HireDate          *time.Time `json:"hire_date,omitempty"`
	ManagerExternalID *string    `gorm:"size:64" json:"manager_external_id,omitempty"`
	Status            string     `gorm:"size:32;index" json:"status"`

	RankExternalID *string `gorm:"size:64" json:"rank_external_id,omitempty"`
	RankCode       *string `gorm:"size:32" json:"rank_code,omitempty"`
	RankName       *string `gorm:"size:128" json:"rank_name,omitempty"`
	RankLevel      *int    `json:"rank_level,omitempty"`

	DeptExternalID *string `gorm:"size:64" json:"dept_external_id,omitempty"`
	DeptCode       *string `gorm:"size:32;index" json:"dept_code,omitempty"`
	DeptName       *string `gorm:"size:128" json:"dept_name,omitempty"`
	DeptLevel      *int    `json:"dept_level,omitempty"`

	// ExternalUpdatedAt is the upstream system's own modification timestamp.
	ExternalUpdatedAt *time.Time `json:"external_updated_at,omitempty"`
	// LastSyncAt is when this system last wrote the record.
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for GORM.
func (Employee) TableName() string {
	return "employees"
}

// BeforeCreate assigns the internal identifier.
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// HasRank reports whether the record carries any rank enrichment.
func (e *Employee) HasRank() bool {
	return e.RankExternalID != nil || e.RankName != nil || e.RankCode != nil
}

// HasDept reports whether the record carries any department enrichment.
func (e *Employee) HasDept() bool {
	return e.DeptExternalID != nil || e.DeptName != nil || e.DeptCode != nil
}

// SyncOutcome is the ephemeral result of one synchronization pass. It is
// returned to the caller and never persisted.
type SyncOutcome struct {
	Success   bool      `json:"success"`
	Total     int       `json:"total"`
	Created   int       `json:"created"`
	Updated   int       `json:"updated"`
	Skipped   int       `json:"skipped"`
	Errors    []string  `json:"errors"`
	StartedAt time.Time `json:"started_at"`
}
