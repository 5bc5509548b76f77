package mocks

import (
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"absence-tracker/internal/models"
	"absence-tracker/internal/policy"
	"absence-tracker/internal/repository"
)

type AbsenceRepository struct {
	mock.Mock
}

func (m *AbsenceRepository) Create(record *models.AbsenceRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *AbsenceRepository) GetScoped(id uuid.UUID, reportedBy uuid.UUID) (*models.AbsenceRecord, error) {
	args := m.Called(id, reportedBy)
	record, _ := args.Get(0).(*models.AbsenceRecord)
	return record, args.Error(1)
}

func (m *AbsenceRepository) ExistsForEmployeeOnDate(employeeID string, date time.Time, excludeID uuid.UUID) (bool, error) {
	args := m.Called(employeeID, date, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *AbsenceRepository) List(filter policy.ListFilter) ([]models.AbsenceRecord, error) {
	args := m.Called(filter)
	records, _ := args.Get(0).([]models.AbsenceRecord)
	return records, args.Error(1)
}

func (m *AbsenceRepository) Update(record *models.AbsenceRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *AbsenceRepository) Delete(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *AbsenceRepository) CountByStatus(filter repository.StatsFilter) ([]repository.StatusCount, error) {
	args := m.Called(filter)
	counts, _ := args.Get(0).([]repository.StatusCount)
	return counts, args.Error(1)
}
