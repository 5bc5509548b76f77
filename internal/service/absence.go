package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"absence-tracker/internal/apperr"
	"absence-tracker/internal/models"
	"absence-tracker/internal/policy"
	"absence-tracker/internal/repository"
)

type AbsenceService struct {
	records repository.AbsenceRepository
	logger  *logrus.Logger
}

func NewAbsenceService(records repository.AbsenceRepository) *AbsenceService {
	return &AbsenceService{records: records, logger: logrus.New()}
}

type AbsenceInput struct {
	EmployeeName string
	EmployeeID   string
	Date         string
	Status       models.AbsenceStatus
	Reason       string
}

// AbsenceUpdateInput carries partial changes; nil fields are left untouched.
type AbsenceUpdateInput struct {
	EmployeeName *string
	EmployeeID   *string
	Date         *string
	Status       *models.AbsenceStatus
	Reason       *string
}

// AbsenceResponse is the wire shape of a record, joined with the reporter's
// username. The username is empty when the reporting account was deleted.
type AbsenceResponse struct {
	ID               uuid.UUID            `json:"id"`
	EmployeeName     string               `json:"employee_name"`
	EmployeeID       string               `json:"employee_id"`
	Group            string               `json:"group"`
	Date             string               `json:"date"`
	Status           models.AbsenceStatus `json:"status"`
	Reason           string               `json:"reason,omitempty"`
	ReportedBy       uuid.UUID            `json:"reported_by"`
	ReporterUsername string               `json:"reporter_username,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// Create files an attendance report. The record's group and reporter always
// come from the principal, never from the payload.
func (s *AbsenceService) Create(input AbsenceInput, p policy.Principal) (*AbsenceResponse, error) {
	if !policy.CanCreateAbsence(p) {
		return nil, fmt.Errorf("%w: only daily reporters can file attendance reports", apperr.ErrForbidden)
	}

	if input.EmployeeName == "" || input.EmployeeID == "" || input.Date == "" || input.Status == "" {
		return nil, fmt.Errorf("%w: employee_name, employee_id, date and status are required", apperr.ErrValidation)
	}
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperr.ErrValidation, input.Status)
	}
	date, err := parseDay(input.Date)
	if err != nil {
		return nil, err
	}

	// Friendlier message on the sequential path; the unique index still
	// decides the winner if two reporters race past this check.
	exists, err := s.records.ExistsForEmployeeOnDate(input.EmployeeID, date, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: absence report already exists for this employee on this date", apperr.ErrConflict)
	}

	record := &models.AbsenceRecord{
		EmployeeName: input.EmployeeName,
		EmployeeID:   input.EmployeeID,
		Group:        p.Group,
		Date:         date,
		Status:       input.Status,
		Reason:       input.Reason,
		ReportedBy:   p.ID,
	}
	if err := s.records.Create(record); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"record_id":   record.ID,
		"employee_id": record.EmployeeID,
		"date":        input.Date,
		"status":      record.Status,
	}).Info("absence report created")

	return s.reload(record)
}

// List returns records the principal is allowed to see, newest day first.
// Reporters only ever see their own submissions regardless of the query.
func (s *AbsenceService) List(p policy.Principal, q policy.ListQuery) ([]AbsenceResponse, error) {
	filter, ok := policy.ListAbsencesFilter(p, q)
	if !ok {
		return nil, fmt.Errorf("%w: role %q may not list absence reports", apperr.ErrForbidden, p.Role)
	}

	records, err := s.records.List(filter)
	if err != nil {
		return nil, err
	}

	responses := make([]AbsenceResponse, 0, len(records))
	for i := range records {
		responses = append(responses, toAbsenceResponse(&records[i]))
	}
	return responses, nil
}

// Update applies partial changes. Reporter ownership is enforced inside the
// lookup, so another reporter's record is indistinguishable from a missing one.
func (s *AbsenceService) Update(id uuid.UUID, input AbsenceUpdateInput, p policy.Principal) (*AbsenceResponse, error) {
	var record *models.AbsenceRecord
	var err error

	switch p.Role {
	case models.RoleAdmin:
		record, err = s.records.GetScoped(id, uuid.Nil)
	case models.RoleDailyReporter:
		record, err = s.records.GetScoped(id, p.ID)
	default:
		return nil, fmt.Errorf("%w: role %q may not modify absence reports", apperr.ErrForbidden, p.Role)
	}
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%w: absence report not found", apperr.ErrNotFound)
	}
	if !policy.CanMutateAbsence(p, record) {
		return nil, fmt.Errorf("%w: absence report not found", apperr.ErrNotFound)
	}

	if input.EmployeeName != nil {
		record.EmployeeName = *input.EmployeeName
	}
	if input.EmployeeID != nil {
		record.EmployeeID = *input.EmployeeID
	}
	if input.Date != nil {
		date, err := parseDay(*input.Date)
		if err != nil {
			return nil, err
		}
		record.Date = date
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", apperr.ErrValidation, *input.Status)
		}
		record.Status = *input.Status
	}
	if input.Reason != nil {
		record.Reason = *input.Reason
	}

	if input.EmployeeID != nil || input.Date != nil {
		exists, err := s.records.ExistsForEmployeeOnDate(record.EmployeeID, record.Date, record.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: absence report already exists for this employee on this date", apperr.ErrConflict)
		}
	}

	if err := s.records.Update(record); err != nil {
		return nil, err
	}
	return s.reload(record)
}

func (s *AbsenceService) Delete(id uuid.UUID, p policy.Principal) error {
	if !policy.CanDeleteAbsence(p) {
		return fmt.Errorf("%w: deleting absence reports requires admin role", apperr.ErrForbidden)
	}

	if err := s.records.Delete(id); err != nil {
		return err
	}

	s.logger.WithField("record_id", id).Info("absence report deleted")
	return nil
}

// Stats aggregates the filtered record set into per-status counts.
func (s *AbsenceService) Stats(p policy.Principal, filter repository.StatsFilter) (*StatsSummary, error) {
	if !policy.CanViewStats(p) {
		return nil, fmt.Errorf("%w: statistics require admin or manager role", apperr.ErrForbidden)
	}

	counts, err := s.records.CountByStatus(filter)
	if err != nil {
		return nil, err
	}
	return Summarize(counts), nil
}

func (s *AbsenceService) reload(record *models.AbsenceRecord) (*AbsenceResponse, error) {
	fresh, err := s.records.GetScoped(record.ID, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if fresh == nil {
		fresh = record
	}
	resp := toAbsenceResponse(fresh)
	return &resp, nil
}

func toAbsenceResponse(r *models.AbsenceRecord) AbsenceResponse {
	return AbsenceResponse{
		ID:               r.ID,
		EmployeeName:     r.EmployeeName,
		EmployeeID:       r.EmployeeID,
		Group:            r.Group,
		Date:             r.Date.Format(models.DateLayout),
		Status:           r.Status,
		Reason:           r.Reason,
		ReportedBy:       r.ReportedBy,
		ReporterUsername: r.ReporterUsername(),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func parseDay(value string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be formatted as %s", apperr.ErrValidation, models.DateLayout)
	}
	return models.NormalizeDate(t), nil
}
