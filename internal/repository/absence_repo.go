package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"absence-tracker/internal/apperr"
	"absence-tracker/internal/models"
	"absence-tracker/internal/policy"
)

// StatsFilter scopes the aggregation query; all fields are optional.
type StatsFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Group     string
}

type StatusCount struct {
	Status models.AbsenceStatus `json:"status"`
	Count  int64                `json:"count"`
}

type AbsenceRepository interface {
	Create(record *models.AbsenceRecord) error
	GetScoped(id uuid.UUID, reportedBy uuid.UUID) (*models.AbsenceRecord, error)
	ExistsForEmployeeOnDate(employeeID string, date time.Time, excludeID uuid.UUID) (bool, error)
	List(filter policy.ListFilter) ([]models.AbsenceRecord, error)
	Update(record *models.AbsenceRecord) error
	Delete(id uuid.UUID) error
	CountByStatus(filter StatsFilter) ([]StatusCount, error)
}

type GormAbsenceRepository struct {
	db *gorm.DB
}

func NewGormAbsenceRepository(db *gorm.DB) (AbsenceRepository, error) {
	if err := db.AutoMigrate(&models.AbsenceRecord{}); err != nil {
		return nil, err
	}
	return &GormAbsenceRepository{db: db}, nil
}

// Create inserts the record. The unique index on (employee_id, date) is the
// authoritative duplicate guard: a losing concurrent insert comes back as
// ErrConflict rather than a second stored row.
func (r *GormAbsenceRepository) Create(record *models.AbsenceRecord) error {
	err := r.db.Create(record).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.ErrConflict
	}
	return err
}

// GetScoped fetches a record by id, additionally constrained to a reporter
// when reportedBy is non-zero. A miss returns (nil, nil) so callers can map
// ownership misses to not-found without learning whether the record exists.
func (r *GormAbsenceRepository) GetScoped(id uuid.UUID, reportedBy uuid.UUID) (*models.AbsenceRecord, error) {
	q := r.db.Preload("Reporter").Where("id = ?", id)
	if reportedBy != uuid.Nil {
		q = q.Where("reported_by = ?", reportedBy)
	}

	var record models.AbsenceRecord
	err := q.First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *GormAbsenceRepository) ExistsForEmployeeOnDate(employeeID string, date time.Time, excludeID uuid.UUID) (bool, error) {
	q := r.db.Model(&models.AbsenceRecord{}).
		Where("employee_id = ? AND date = ?", employeeID, models.NormalizeDate(date))
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormAbsenceRepository) List(filter policy.ListFilter) ([]models.AbsenceRecord, error) {
	q := r.db.Preload("Reporter")

	if filter.ReportedBy != uuid.Nil {
		q = q.Where("reported_by = ?", filter.ReportedBy)
	}
	if filter.Date != nil {
		q = q.Where("date = ?", models.NormalizeDate(*filter.Date))
	}
	if filter.Group != "" {
		q = q.Where("group_name = ?", filter.Group)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var records []models.AbsenceRecord
	err := q.Order("date DESC").Find(&records).Error
	return records, err
}

// Update persists field changes only; the loaded Reporter association must
// never be written back to the users table.
func (r *GormAbsenceRepository) Update(record *models.AbsenceRecord) error {
	err := r.db.Omit(clause.Associations).Save(record).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.ErrConflict
	}
	return err
}

func (r *GormAbsenceRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.AbsenceRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// CountByStatus partitions the filtered set by status. Statuses without any
// matching record simply do not appear in the result.
func (r *GormAbsenceRepository) CountByStatus(filter StatsFilter) ([]StatusCount, error) {
	q := r.db.Model(&models.AbsenceRecord{})

	if filter.StartDate != nil {
		q = q.Where("date >= ?", models.NormalizeDate(*filter.StartDate))
	}
	if filter.EndDate != nil {
		q = q.Where("date <= ?", models.NormalizeDate(*filter.EndDate))
	}
	if filter.Group != "" {
		q = q.Where("group_name = ?", filter.Group)
	}

	var counts []StatusCount
	err := q.Select("status, COUNT(*) AS count").
		Group("status").
		Order("count DESC").
		Scan(&counts).Error
	return counts, err
}
