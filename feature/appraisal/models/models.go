package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is an evaluation period's project container for WBS assignment.
type Project struct {
	ID        string     `gorm:"type:char(36);primaryKey" json:"id"`
	Code      string     `gorm:"size:32;uniqueIndex;not null" json:"code"`
	Name      string     `gorm:"size:128;not null" json:"name"`
	Status    string     `gorm:"size:32;index;default:OPEN" json:"status"`
	StartsAt  *time.Time `json:"starts_at,omitempty"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	WbsItems []WbsItem `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"wbs_items,omitempty"`
}

// TableName sets the table name for GORM.
func (Project) TableName() string {
	return "projects"
}

// BeforeCreate assigns the internal identifier.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// WbsItem is one work-breakdown-structure entry inside a project. The
// assignee references an employee by upstream external id; validation
// against the directory happens at assignment time.
type WbsItem struct {
	ID                 string    `gorm:"type:char(36);primaryKey" json:"id"`
	ProjectID          string    `gorm:"type:char(36);index;not null" json:"project_id"`
	Code               string    `gorm:"size:32;not null" json:"code"`
	Title              string    `gorm:"size:255;not null" json:"title"`
	AssigneeExternalID *string   `gorm:"size:64;index" json:"assignee_external_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName sets the table name for GORM.
func (WbsItem) TableName() string {
	return "wbs_items"
}

// BeforeCreate assigns the internal identifier.
func (w *WbsItem) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

// Question is one evaluation question presented during scoring workflows.
// Scoring semantics live outside this service.
type Question struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Category  string    `gorm:"size:64;index;not null" json:"category"`
	Text      string    `gorm:"size:1000;not null" json:"text"`
	Weight    int       `gorm:"default:1" json:"weight"`
	Active    bool      `gorm:"default:true;index" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for GORM.
func (Question) TableName() string {
	return "questions"
}

// BeforeCreate assigns the internal identifier.
func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
