package policy

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"absence-tracker/internal/models"
)

func TestListAbsencesFilter(t *testing.T) {
	reporterID := uuid.New()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	query := ListQuery{Date: &date, Group: "warehouse", Status: models.StatusLate}

	tests := []struct {
		name    string
		role    models.Role
		allowed bool
		scoped  bool
	}{
		{"admin gets caller constraints", models.RoleAdmin, true, false},
		{"manager gets caller constraints", models.RoleManager, true, false},
		{"reporter is pinned to own records", models.RoleDailyReporter, true, true},
		{"unknown role is denied", models.Role("auditor"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Principal{ID: reporterID, Role: tt.role, Group: "warehouse"}
			filter, ok := ListAbsencesFilter(p, query)
			assert.Equal(t, tt.allowed, ok)
			if !tt.allowed {
				return
			}
			if tt.scoped {
				assert.Equal(t, reporterID, filter.ReportedBy)
				// Caller constraints must be dropped for reporters.
				assert.Nil(t, filter.Date)
				assert.Empty(t, filter.Group)
				assert.Empty(t, filter.Status)
			} else {
				assert.Equal(t, uuid.Nil, filter.ReportedBy)
				assert.Equal(t, &date, filter.Date)
				assert.Equal(t, "warehouse", filter.Group)
				assert.Equal(t, models.StatusLate, filter.Status)
			}
		})
	}
}

func TestCanCreateAbsence(t *testing.T) {
	assert.True(t, CanCreateAbsence(Principal{Role: models.RoleDailyReporter}))
	assert.False(t, CanCreateAbsence(Principal{Role: models.RoleAdmin}))
	assert.False(t, CanCreateAbsence(Principal{Role: models.RoleManager}))
}

func TestCanMutateAbsence(t *testing.T) {
	owner := uuid.New()
	record := &models.AbsenceRecord{ReportedBy: owner}

	assert.True(t, CanMutateAbsence(Principal{Role: models.RoleAdmin}, record))
	assert.True(t, CanMutateAbsence(Principal{ID: owner, Role: models.RoleDailyReporter}, record))
	assert.False(t, CanMutateAbsence(Principal{ID: uuid.New(), Role: models.RoleDailyReporter}, record))
	assert.False(t, CanMutateAbsence(Principal{Role: models.RoleManager}, record))
	assert.False(t, CanMutateAbsence(Principal{Role: models.RoleDailyReporter}, nil))
}

func TestRoleOnlyDecisions(t *testing.T) {
	admin := Principal{Role: models.RoleAdmin}
	manager := Principal{Role: models.RoleManager}
	reporter := Principal{Role: models.RoleDailyReporter}

	assert.True(t, CanDeleteAbsence(admin))
	assert.False(t, CanDeleteAbsence(manager))
	assert.False(t, CanDeleteAbsence(reporter))

	assert.True(t, CanManageUsers(admin))
	assert.False(t, CanManageUsers(manager))
	assert.False(t, CanManageUsers(reporter))

	assert.True(t, CanListUsers(admin))
	assert.True(t, CanListUsers(manager))
	assert.False(t, CanListUsers(reporter))

	assert.True(t, CanViewStats(admin))
	assert.True(t, CanViewStats(manager))
	assert.False(t, CanViewStats(reporter))
}
