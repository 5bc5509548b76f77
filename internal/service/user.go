package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"absence-tracker/internal/apperr"
	"absence-tracker/internal/models"
	"absence-tracker/internal/policy"
	"absence-tracker/internal/repository"
)

// UserService is the account directory. Admins manage accounts, managers may
// list them; password hashes never leave the model's json:"-" field.
type UserService struct {
	users  repository.UserRepository
	logger *logrus.Logger
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users, logger: logrus.New()}
}

type UserInput struct {
	Username string
	Email    string
	Password string
	Role     models.Role
	Group    string
}

func (s *UserService) List(p policy.Principal) ([]models.User, error) {
	if !policy.CanListUsers(p) {
		return nil, fmt.Errorf("%w: listing users requires admin or manager role", apperr.ErrForbidden)
	}
	return s.users.GetAll()
}

func (s *UserService) Create(input UserInput, p policy.Principal) (*models.User, error) {
	if !policy.CanManageUsers(p) {
		return nil, fmt.Errorf("%w: managing users requires admin role", apperr.ErrForbidden)
	}

	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", apperr.ErrValidation)
	}
	role := input.Role
	if role == "" {
		role = models.RoleDailyReporter
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperr.ErrValidation, input.Role)
	}

	group, err := groupForRole(role, input.Group)
	if err != nil {
		return nil, err
	}

	existing, err := s.users.GetByUsernameOrEmail(input.Username, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username or email already in use", apperr.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
		Group:        group,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"username": user.Username, "role": user.Role}).Info("user created")
	return user, nil
}

func (s *UserService) Update(id uuid.UUID, input UserInput, p policy.Principal) (*models.User, error) {
	if !policy.CanManageUsers(p) {
		return nil, fmt.Errorf("%w: managing users requires admin role", apperr.ErrForbidden)
	}

	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", apperr.ErrNotFound)
	}

	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Role != "" {
		if !input.Role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", apperr.ErrValidation, input.Role)
		}
		user.Role = input.Role
	}

	// Re-apply the group invariant against the (possibly new) role.
	if user.Role == models.RoleDailyReporter {
		if input.Group != "" {
			g := input.Group
			user.Group = &g
		}
		if user.Group == nil {
			return nil, fmt.Errorf("%w: daily reporters must belong to a group", apperr.ErrValidation)
		}
	} else {
		user.Group = nil
	}

	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	// Best-effort collision check; the unique indexes are the backstop.
	other, err := s.users.GetByUsernameOrEmail(user.Username, user.Email)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != user.ID {
		return nil, fmt.Errorf("%w: username or email already in use", apperr.ErrConflict)
	}

	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the account but leaves any absence records it reported;
// their reported_by reference dangles and listings tolerate that.
func (s *UserService) Delete(id uuid.UUID, p policy.Principal) error {
	if !policy.CanManageUsers(p) {
		return fmt.Errorf("%w: managing users requires admin role", apperr.ErrForbidden)
	}

	if err := s.users.Delete(id); err != nil {
		return err
	}

	s.logger.WithField("user_id", id).Info("user deleted")
	return nil
}
