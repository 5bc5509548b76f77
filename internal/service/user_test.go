package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"absence-tracker/internal/apperr"
	"absence-tracker/internal/mocks"
	"absence-tracker/internal/models"
	"absence-tracker/internal/policy"
)

func adminPrincipal() policy.Principal {
	return policy.Principal{ID: uuid.New(), Role: models.RoleAdmin}
}

func TestCreateUserDiscardsGroupForNonReporters(t *testing.T) {
	repo := new(mocks.UserRepository)
	svc := NewUserService(repo)

	repo.On("GetByUsernameOrEmail", "boss", "boss@example.com").Return(nil, nil)
	repo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		user := args.Get(0).(*models.User)
		assert.Equal(t, models.RoleManager, user.Role)
		assert.Nil(t, user.Group)
	}).Return(nil)

	user, err := svc.Create(UserInput{
		Username: "boss",
		Email:    "boss@example.com",
		Password: "secret123",
		Role:     models.RoleManager,
		Group:    "warehouse", // must be dropped
	}, adminPrincipal())

	assert.NoError(t, err)
	assert.Nil(t, user.Group)
	repo.AssertExpectations(t)
}

func TestCreateReporterRequiresGroup(t *testing.T) {
	repo := new(mocks.UserRepository)
	svc := NewUserService(repo)

	_, err := svc.Create(UserInput{
		Username: "rep1",
		Email:    "rep1@example.com",
		Password: "secret123",
		Role:     models.RoleDailyReporter,
	}, adminPrincipal())

	assert.ErrorIs(t, err, apperr.ErrValidation)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateUserIdentityCollision(t *testing.T) {
	repo := new(mocks.UserRepository)
	svc := NewUserService(repo)

	repo.On("GetByUsernameOrEmail", "rep1", "new@example.com").Return(&models.User{ID: uuid.New()}, nil)

	_, err := svc.Create(UserInput{
		Username: "rep1",
		Email:    "new@example.com",
		Password: "secret123",
		Role:     models.RoleManager,
	}, adminPrincipal())

	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestCreateUserRequiresAdmin(t *testing.T) {
	repo := new(mocks.UserRepository)
	svc := NewUserService(repo)

	for _, role := range []models.Role{models.RoleManager, models.RoleDailyReporter} {
		_, err := svc.Create(UserInput{
			Username: "x",
			Email:    "x@example.com",
			Password: "secret123",
		}, policy.Principal{Role: role})
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	}
}

func TestListUsersAllowedForManagers(t *testing.T) {
	repo := new(mocks.UserRepository)
	svc := NewUserService(repo)

	repo.On("GetAll").Return([]models.User{{Username: "rep1"}}, nil)

	users, err := svc.List(policy.Principal{Role: models.RoleManager})
	assert.NoError(t, err)
	assert.Len(t, users, 1)

	_, err = svc.List(policy.Principal{Role: models.RoleDailyReporter})
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestUpdateUserRoleChangeClearsGroup(t *testing.T) {
	repo := new(mocks.UserRepository)
	svc := NewUserService(repo)
	id := uuid.New()

	group := "warehouse"
	existing := &models.User{
		ID:       id,
		Username: "rep1",
		Email:    "rep1@example.com",
		Role:     models.RoleDailyReporter,
		Group:    &group,
	}

	repo.On("GetByID", id).Return(existing, nil)
	repo.On("GetByUsernameOrEmail", "rep1", "rep1@example.com").Return(existing, nil)
	repo.On("Update", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		user := args.Get(0).(*models.User)
		assert.Equal(t, models.RoleManager, user.Role)
		assert.Nil(t, user.Group)
	}).Return(nil)

	user, err := svc.Update(id, UserInput{Role: models.RoleManager}, adminPrincipal())

	assert.NoError(t, err)
	assert.Nil(t, user.Group)
	repo.AssertExpectations(t)
}

func TestUpdateUserNotFound(t *testing.T) {
	repo := new(mocks.UserRepository)
	svc := NewUserService(repo)
	id := uuid.New()

	repo.On("GetByID", id).Return(nil, nil)

	_, err := svc.Update(id, UserInput{Username: "nobody"}, adminPrincipal())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteUserPassesThroughNotFound(t *testing.T) {
	repo := new(mocks.UserRepository)
	svc := NewUserService(repo)
	id := uuid.New()

	repo.On("Delete", id).Return(apperr.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(id, adminPrincipal()), apperr.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(id, policy.Principal{Role: models.RoleManager}), apperr.ErrForbidden)
}
