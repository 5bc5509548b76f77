// Package policy holds the authorization decisions as pure functions of the
// principal, the action and (for mutations) the target record's ownership
// fields. Nothing here touches storage; handlers and services call these
// before executing an operation.
package policy

import (
	"time"

	"github.com/google/uuid"

	"absence-tracker/internal/models"
)

// Principal is the authenticated identity attached to a request.
type Principal struct {
	ID    uuid.UUID
	Role  models.Role
	Group string
}

// ListQuery carries the caller-supplied list constraints.
type ListQuery struct {
	Date   *time.Time
	Group  string
	Status models.AbsenceStatus
}

// ListFilter restricts which absence records a query may return. A zero
// ReportedBy means no reporter restriction.
type ListFilter struct {
	Date       *time.Time
	Group      string
	Status     models.AbsenceStatus
	ReportedBy uuid.UUID
}

// ListAbsencesFilter derives the filter a principal may list with. Admins and
// managers get the caller constraints ANDed together; daily reporters are
// pinned to their own submissions and any caller constraints are dropped.
func ListAbsencesFilter(p Principal, q ListQuery) (ListFilter, bool) {
	switch p.Role {
	case models.RoleAdmin, models.RoleManager:
		return ListFilter{Date: q.Date, Group: q.Group, Status: q.Status}, true
	case models.RoleDailyReporter:
		return ListFilter{ReportedBy: p.ID}, true
	}
	return ListFilter{}, false
}

// CanCreateAbsence: only daily reporters file attendance.
func CanCreateAbsence(p Principal) bool {
	return p.Role == models.RoleDailyReporter
}

// CanMutateAbsence: admins mutate anything, reporters only their own records,
// managers nothing. Callers must surface an ownership miss as not-found, not
// forbidden, so reporters cannot probe for other reporters' records.
func CanMutateAbsence(p Principal, record *models.AbsenceRecord) bool {
	switch p.Role {
	case models.RoleAdmin:
		return true
	case models.RoleDailyReporter:
		return record != nil && record.ReportedBy == p.ID
	}
	return false
}

func CanDeleteAbsence(p Principal) bool {
	return p.Role == models.RoleAdmin
}

func CanManageUsers(p Principal) bool {
	return p.Role == models.RoleAdmin
}

func CanListUsers(p Principal) bool {
	return p.Role == models.RoleAdmin || p.Role == models.RoleManager
}

func CanViewStats(p Principal) bool {
	return p.Role == models.RoleAdmin || p.Role == models.RoleManager
}
