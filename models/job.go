package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobStatus is one step of the fixed job lifecycle
type JobStatus string

// Job lifecycle states. Transitions are strictly forward, one step at a
// time; "completed" is terminal.
const (
	StatusRequested  JobStatus = "requested"
	StatusAssigned   JobStatus = "assigned"
	StatusEnroute    JobStatus = "enroute"
	StatusInProgress JobStatus = "in-progress"
	StatusCompleted  JobStatus = "completed"
)

// statusOrder gives each lifecycle state its position in the linear chain
var statusOrder = map[JobStatus]int{
	StatusRequested:  0,
	StatusAssigned:   1,
	StatusEnroute:    2,
	StatusInProgress: 3,
	StatusCompleted:  4,
}

// IsValidStatus reports whether s is a known lifecycle state
func IsValidStatus(s JobStatus) bool {
	_, ok := statusOrder[s]
	return ok
}

// CanTransition reports whether moving from one status to another is a
// single forward step in the lifecycle
func CanTransition(from, to JobStatus) bool {
	fromOrder, okFrom := statusOrder[from]
	toOrder, okTo := statusOrder[to]
	return okFrom && okTo && toOrder == fromOrder+1
}

// Issue types a repair request can report
const (
	IssueBattery  = "battery"
	IssuePanel    = "panel"
	IssueWiring   = "wiring"
	IssueInverter = "inverter"
)

// IssueTypeInfo describes one selectable issue type
type IssueTypeInfo struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// IssueTypes is the fixed set of issue types offered on the request form
var IssueTypes = []IssueTypeInfo{
	{Value: IssueBattery, Label: "Battery Issue", Description: "Battery not charging, swollen, or leaking"},
	{Value: IssuePanel, Label: "Solar Panel", Description: "Panel damage, low output, or dirty panels"},
	{Value: IssueWiring, Label: "Wiring Problem", Description: "Loose connections, burnt wires, or short circuit"},
	{Value: IssueInverter, Label: "Inverter Fault", Description: "Inverter not working, overheating, or error codes"},
}

// IsValidIssueType reports whether v is one of the enumerated issue types
func IsValidIssueType(v string) bool {
	for _, it := range IssueTypes {
		if it.Value == v {
			return true
		}
	}
	return false
}

// Job represents one service request from creation through completion
type Job struct {
	ID             string               `gorm:"primaryKey" json:"id"`
	UserID         string               `gorm:"not null;index" json:"user_id"`
	UserName       string               `gorm:"not null" json:"user_name"`
	TechnicianID   *string              `gorm:"index" json:"technician_id"`   // nil until a technician is matched
	TechnicianName *string              `json:"technician_name"`              // denormalized for display
	IssueType      string               `gorm:"not null" json:"issue_type"`   // battery, panel, wiring, inverter
	Description    string               `gorm:"type:text;not null" json:"description"`
	ImageURL       *string              `json:"image_url"`                    // nullable, set when the user attached a photo
	Cluster        string               `gorm:"not null;index" json:"cluster"`
	Location       string               `gorm:"not null" json:"location"`
	PreferredTime  string               `gorm:"not null" json:"preferred_time"`
	Status         JobStatus            `gorm:"not null;default:'requested'" json:"status"`
	Rating         *int                 `json:"rating"` // nullable, written once when the user rates the job
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
	DeletedAt      gorm.DeletedAt       `gorm:"index" json:"-"`
	StatusHistory  []StatusHistoryEntry `gorm:"foreignKey:JobID" json:"status_history"`
}

// TableName specifies the table name for the Job model
func (Job) TableName() string {
	return "jobs"
}

// BeforeCreate assigns an opaque UUID identifier to new jobs
func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}

// StatusHistoryEntry is one append-only record of a status the job has held.
// Seq preserves append order; the first entry of every job is "requested".
type StatusHistoryEntry struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	JobID     string    `gorm:"not null;index" json:"-"`
	Seq       int       `gorm:"not null" json:"seq"`
	Status    JobStatus `gorm:"not null" json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// TableName specifies the table name for the StatusHistoryEntry model
func (StatusHistoryEntry) TableName() string {
	return "job_status_history"
}
