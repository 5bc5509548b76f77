package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AbsenceStatus string

const (
	StatusPresent   AbsenceStatus = "present"
	StatusAbsent    AbsenceStatus = "absent"
	StatusLate      AbsenceStatus = "late"
	StatusSickLeave AbsenceStatus = "sick_leave"
	StatusVacation  AbsenceStatus = "vacation"
)

// Valid reports whether s is one of the known attendance statuses.
func (s AbsenceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusSickLeave, StatusVacation:
		return true
	}
	return false
}

// AbsenceRecord is one attendance report for one employee on one calendar day.
// The composite unique index enforces at most one record per (employee, day).
type AbsenceRecord struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeName string        `gorm:"not null" json:"employee_name"`
	EmployeeID   string        `gorm:"not null;uniqueIndex:idx_employee_date" json:"employee_id"`
	Group        string        `gorm:"column:group_name;not null;index" json:"group"`
	Date         time.Time     `gorm:"type:date;not null;uniqueIndex:idx_employee_date" json:"date"`
	Status       AbsenceStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Reason       string        `json:"reason"`
	ReportedBy   uuid.UUID     `gorm:"type:uuid;not null;index" json:"reported_by"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`

	// Reporter may be nil when the reporting account was deleted.
	Reporter *User `gorm:"foreignKey:ReportedBy" json:"-"`
}

func (AbsenceRecord) TableName() string {
	return "absence_records"
}

func (a *AbsenceRecord) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// ReporterUsername resolves the reporter's username, "" when dangling.
func (a *AbsenceRecord) ReporterUsername() string {
	if a.Reporter == nil {
		return ""
	}
	return a.Reporter.Username
}

// DateLayout is the wire format for record dates; time-of-day is ignored.
const DateLayout = "2006-01-02"

// NormalizeDate truncates t to midnight UTC so records compare by calendar day.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
