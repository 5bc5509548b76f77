package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"absence-tracker/internal/apperr"
	"absence-tracker/internal/models"
	"absence-tracker/internal/policy"
	"absence-tracker/internal/repository"
)

type AuthService struct {
	users  repository.UserRepository
	secret []byte
	ttl    time.Duration
	logger *logrus.Logger
}

func NewAuthService(users repository.UserRepository, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{
		users:  users,
		secret: secret,
		ttl:    ttl,
		logger: logrus.New(),
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     models.Role
	Group    string
}

type accessClaims struct {
	Role  string `json:"role"`
	Group string `json:"group,omitempty"`
	jwt.RegisteredClaims
}

// Register creates an account and returns it with a fresh token. Self-service
// registration never produces an admin; admins come from the startup
// bootstrap or from an existing admin via the user directory.
func (s *AuthService) Register(input RegisterInput) (*models.User, string, error) {
	role := input.Role
	if role == "" {
		role = models.RoleDailyReporter
	}
	if !role.Valid() {
		return nil, "", fmt.Errorf("%w: unknown role %q", apperr.ErrValidation, input.Role)
	}
	if role == models.RoleAdmin {
		return nil, "", fmt.Errorf("%w: admin accounts cannot be self-registered", apperr.ErrValidation)
	}

	group, err := groupForRole(role, input.Group)
	if err != nil {
		return nil, "", err
	}

	existing, err := s.users.GetByUsernameOrEmail(input.Username, input.Email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", fmt.Errorf("%w: username or email already in use", apperr.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
		Group:        group,
	}
	if err := s.users.Create(user); err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.WithFields(logrus.Fields{"username": user.Username, "role": user.Role}).Info("user registered")
	return user, token, nil
}

// Login verifies credentials without revealing which of the two was wrong.
func (s *AuthService) Login(username, password string) (*models.User, string, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", fmt.Errorf("%w: invalid username or password", apperr.ErrUnauthenticated)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.WithField("username", username).Warn("failed login attempt")
		return nil, "", fmt.Errorf("%w: invalid username or password", apperr.ErrUnauthenticated)
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := accessClaims{
		Role:  string(user.Role),
		Group: user.GroupName(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken turns a bearer token into a principal. Anything off — bad
// signature, wrong method, expired, malformed subject or role — fails closed.
func (s *AuthService) ParseToken(raw string) (policy.Principal, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return policy.Principal{}, apperr.ErrUnauthenticated
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return policy.Principal{}, apperr.ErrUnauthenticated
	}
	role := models.Role(claims.Role)
	if !role.Valid() {
		return policy.Principal{}, apperr.ErrUnauthenticated
	}

	return policy.Principal{ID: id, Role: role, Group: claims.Group}, nil
}

// EnsureAdmin creates or promotes the bootstrap admin account from config.
func (s *AuthService) EnsureAdmin(username, email, password string) error {
	existing, err := s.users.GetByUsername(username)
	if err != nil {
		return err
	}

	if existing != nil {
		if existing.IsAdmin() {
			return nil
		}
		existing.Role = models.RoleAdmin
		existing.Group = nil
		return s.users.Update(existing)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := s.users.Create(admin); err != nil {
		return err
	}

	s.logger.WithField("username", username).Info("bootstrap admin created")
	return nil
}

// groupForRole enforces the invariant that a group is set if and only if the
// role is daily_reporter. Supplied groups for other roles are discarded.
func groupForRole(role models.Role, group string) (*string, error) {
	if role != models.RoleDailyReporter {
		return nil, nil
	}
	if group == "" {
		return nil, fmt.Errorf("%w: daily reporters must belong to a group", apperr.ErrValidation)
	}
	return &group, nil
}
