package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/user-management-api/internal/api/dto"
	"github.com/kingrain94/user-management-api/internal/domain"
	"github.com/kingrain94/user-management-api/internal/keycloak"
	"github.com/kingrain94/user-management-api/internal/mocks"
	"github.com/kingrain94/user-management-api/internal/repository"
	"github.com/kingrain94/user-management-api/pkg/logger"
)

type UserCommandTestSuite struct {
	suite.Suite
	mockRepo    *mocks.Repository
	mockUsers   *mocks.UserRepository
	mockSearch  *mocks.SearchRepository
	mockIdP     *mocks.IdentityProvider
	mockEmitter *mocks.EventEmitter
	mockHistory *mocks.HistoryScheduler
	service     *UserService
	ctx         context.Context
}

func (s *UserCommandTestSuite) SetupTest() {
	s.mockRepo = new(mocks.Repository)
	s.mockUsers = new(mocks.UserRepository)
	s.mockSearch = new(mocks.SearchRepository)
	s.mockIdP = new(mocks.IdentityProvider)
	s.mockEmitter = new(mocks.EventEmitter)
	s.mockHistory = new(mocks.HistoryScheduler)
	s.ctx = context.Background()

	s.mockRepo.On("User").Return(s.mockUsers)
	s.mockRepo.On("Search").Return(s.mockSearch)

	s.service = NewUserService(s.mockRepo, s.mockIdP, s.mockEmitter, s.mockHistory, testRoleConfig(), logger.NewNop())
}

func (s *UserCommandTestSuite) TearDownTest() {
	s.mockUsers.AssertExpectations(s.T())
	s.mockIdP.AssertExpectations(s.T())
	s.mockEmitter.AssertExpectations(s.T())
	s.mockHistory.AssertExpectations(s.T())
}

func TestUserCommands(t *testing.T) {
	suite.Run(t, new(UserCommandTestSuite))
}

// emitted captures the events passed to Emit.
func (s *UserCommandTestSuite) emitted() *[]*domain.DomainEvent {
	events := &[]*domain.DomainEvent{}
	s.mockEmitter.On("Emit", s.ctx, mock.AnythingOfType("*domain.DomainEvent")).
		Run(func(args mock.Arguments) {
			*events = append(*events, args.Get(1).(*domain.DomainEvent))
		}).
		Return(nil)
	return events
}

func (s *UserCommandTestSuite) TestCreateUser_Success() {
	// Arrange
	events := s.emitted()
	s.mockUsers.On("GetByEmail", s.ctx, "ana@example.com").Return(nil, repository.ErrNotFound)
	s.mockIdP.On("FindUsers", s.ctx, mock.Anything).Return(nil, nil)

	// Act
	result, err := s.service.CreateUser(s.ctx, ownerToken("owner-1", "biz-1"), dto.CreateUserArgs{
		BusinessID: "biz-1",
		Input:      &dto.UserInput{GeneralInfo: testGeneralInfo("ana@example.com")},
	})

	// Assert
	s.Require().NoError(err)
	s.Require().Len(*events, 1)
	event := (*events)[0]
	s.Equal(domain.EventUserCreated, event.EventType)
	s.Equal(domain.AggregateTypeUser, event.AggregateType)
	s.Equal(domain.EventTypeVersion, event.EventTypeVersion)
	s.Equal("owner.owner-1", event.User)
	s.NotEmpty(event.AggregateID)

	var user domain.User
	s.Require().NoError(event.Decode(&user))
	s.Equal(event.AggregateID, user.ID)
	s.Equal("biz-1", user.BusinessID)
	s.False(user.State)

	s.Equal(200, result.Code)
	s.Equal("User with id: "+event.AggregateID+" has been created", result.Message)
}

func (s *UserCommandTestSuite) TestCreateUser_ValidationFailureEmitsNothing() {
	// Arrange
	args := dto.CreateUserArgs{BusinessID: "biz-1", Input: &dto.UserInput{GeneralInfo: testGeneralInfo("ana@example.com")}}

	// Act
	result, err := s.service.CreateUser(s.ctx, posToken("pos-1", "biz-1"), args)

	// Assert
	s.Nil(result)
	s.ErrorIs(err, domain.ErrPermissionDenied)
	s.mockEmitter.AssertNotCalled(s.T(), "Emit", mock.Anything, mock.Anything)
	s.mockUsers.AssertNotCalled(s.T(), "GetByEmail", mock.Anything, mock.Anything)
}

func (s *UserCommandTestSuite) TestCreateUser_EmitFailure() {
	// Arrange
	s.mockUsers.On("GetByEmail", s.ctx, "ana@example.com").Return(nil, repository.ErrNotFound)
	s.mockIdP.On("FindUsers", s.ctx, mock.Anything).Return(nil, nil)
	s.mockEmitter.On("Emit", s.ctx, mock.Anything).Return(errors.New("connection refused"))

	// Act
	_, err := s.service.CreateUser(s.ctx, adminToken("admin-1"), dto.CreateUserArgs{
		BusinessID: "biz-1",
		Input:      &dto.UserInput{GeneralInfo: testGeneralInfo("ana@example.com")},
	})

	// Assert
	s.Error(err)
	s.ErrorIs(domain.AsError(err), domain.ErrInternal)
}

func (s *UserCommandTestSuite) TestUpdateUserState_Deactivate() {
	// Arrange
	events := s.emitted()
	state := false
	s.mockUsers.On("GetByID", s.ctx, "user-2").Return(storedUser("user-2", "biz-1"), nil)

	// Act
	result, err := s.service.UpdateUserState(s.ctx, ownerToken("owner-1", "biz-1"), dto.UpdateUserStateArgs{UserID: "user-2", State: &state})

	// Assert
	s.Require().NoError(err)
	s.Equal("User status of the user with id: user-2 has been updated", result.Message)
	s.Require().Len(*events, 1)
	s.Equal(domain.EventUserDeactivated, (*events)[0].EventType)
	s.Equal("user-2", (*events)[0].AggregateID)
}

func (s *UserCommandTestSuite) TestUpdateUserState_SelfUpdateEmitsNothing() {
	// Arrange
	state := true
	s.mockUsers.On("GetByID", s.ctx, "admin-1").Return(storedUser("admin-1", "biz-1"), nil)

	// Act
	_, err := s.service.UpdateUserState(s.ctx, adminToken("admin-1"), dto.UpdateUserStateArgs{UserID: "admin-1", State: &state})

	// Assert
	s.ErrorIs(err, domain.ErrSelfUpdateForbidden)
	s.mockEmitter.AssertNotCalled(s.T(), "Emit", mock.Anything, mock.Anything)
}

func (s *UserCommandTestSuite) TestUpdateUserGeneralInfo_Success() {
	// Arrange
	events := s.emitted()
	target := storedUser("user-2", "biz-1")
	s.mockUsers.On("GetByID", s.ctx, "user-2").Return(target, nil)
	s.mockUsers.On("GetByEmail", s.ctx, "new@example.com").Return(nil, repository.ErrNotFound)
	s.mockIdP.On("FindUsers", s.ctx, mock.Anything).Return(nil, nil)

	// Act
	result, err := s.service.UpdateUserGeneralInfo(s.ctx, ownerToken("owner-1", "biz-1"), dto.UpdateUserGeneralInfoArgs{
		UserID: "user-2",
		Input:  &dto.UserInput{GeneralInfo: testGeneralInfo("New@Example.com")},
	})

	// Assert
	s.Require().NoError(err)
	s.Equal("User general info with id: user-2 has been updated", result.Message)
	var payload domain.UserGeneralInfoPayload
	s.Require().NoError((*events)[0].Decode(&payload))
	s.Equal("new@example.com", payload.GeneralInfo.Email)
	s.Equal("user-2", payload.ID)
}

func (s *UserCommandTestSuite) TestCreateUserAuth_Success() {
	// Arrange
	events := s.emitted()
	target := storedUser("user-2", "biz-1")
	target.Roles = []string{"POS"}
	s.mockUsers.On("GetByID", s.ctx, "user-2").Return(target, nil)
	s.mockUsers.On("GetByEmail", s.ctx, target.GeneralInfo.Email).Return(target, nil)
	s.mockIdP.On("FindUsers", s.ctx, mock.Anything).Return(nil, nil)
	s.mockIdP.On("CreateUser", s.ctx, keycloak.UserRepresentation{
		Username:   "ana.lopez",
		FirstName:  "Ana",
		LastName:   "Lopez",
		Email:      target.GeneralInfo.Email,
		Enabled:    keycloak.BoolPtr(true),
		Attributes: map[string][]string{"businessId": {"biz-1"}},
	}).Return("kc-2", nil)
	s.mockIdP.On("ResetPassword", s.ctx, "kc-2", keycloak.PasswordCredential("s3cret", true)).Return(nil)
	s.mockIdP.On("ListRealmRoles", s.ctx).Return([]keycloak.RoleRepresentation{
		{ID: "r-1", Name: "POS"},
		{ID: "r-2", Name: "SYSADMIN"},
	}, nil)
	s.mockIdP.On("AddRealmRoleMappings", s.ctx, "kc-2", []keycloak.RoleRepresentation{{ID: "r-1", Name: "POS"}}).Return(nil)

	// Act
	result, err := s.service.CreateUserAuth(s.ctx, ownerToken("owner-1", "biz-1"), dto.CreateUserAuthArgs{
		UserID: "user-2",
		Input:  &dto.AuthInput{Username: "ana.lopez", Password: "s3cret", Temporary: true},
	})

	// Assert
	s.Require().NoError(err)
	s.Equal("User auth of the user with id: user-2 has been created", result.Message)
	var payload domain.UserAuthPayload
	s.Require().NoError((*events)[0].Decode(&payload))
	s.Equal(domain.UserAuthPayload{UserKeycloakID: "kc-2", Username: "ana.lopez"}, payload)
}

func (s *UserCommandTestSuite) TestCreateUserAuth_PasswordFailureRemovesIdentity() {
	// Arrange
	target := storedUser("user-2", "biz-1")
	s.mockUsers.On("GetByID", s.ctx, "user-2").Return(target, nil)
	s.mockUsers.On("GetByEmail", s.ctx, target.GeneralInfo.Email).Return(target, nil)
	s.mockIdP.On("FindUsers", s.ctx, mock.Anything).Return(nil, nil)
	s.mockIdP.On("CreateUser", s.ctx, mock.Anything).Return("kc-2", nil)
	s.mockIdP.On("ResetPassword", s.ctx, "kc-2", mock.Anything).Return(errors.New("password policy"))
	s.mockIdP.On("DeleteUser", s.ctx, "kc-2").Return(nil)

	// Act
	_, err := s.service.CreateUserAuth(s.ctx, ownerToken("owner-1", "biz-1"), dto.CreateUserAuthArgs{
		UserID: "user-2",
		Input:  &dto.AuthInput{Username: "ana.lopez", Password: "s3cret"},
	})

	// Assert
	s.Error(err)
	s.mockEmitter.AssertNotCalled(s.T(), "Emit", mock.Anything, mock.Anything)
}

func (s *UserCommandTestSuite) TestCreateUserAuth_UsernameTakenMeanwhile() {
	// Arrange
	target := storedUser("user-2", "biz-1")
	s.mockUsers.On("GetByID", s.ctx, "user-2").Return(target, nil)
	s.mockUsers.On("GetByEmail", s.ctx, target.GeneralInfo.Email).Return(target, nil)
	s.mockIdP.On("FindUsers", s.ctx, mock.Anything).Return(nil, nil)
	s.mockIdP.On("CreateUser", s.ctx, mock.Anything).
		Return("", &keycloak.APIError{Operation: "create user", StatusCode: 409})

	// Act
	_, err := s.service.CreateUserAuth(s.ctx, ownerToken("owner-1", "biz-1"), dto.CreateUserAuthArgs{
		UserID: "user-2",
		Input:  &dto.AuthInput{Username: "ana.lopez", Password: "s3cret"},
	})

	// Assert
	s.ErrorIs(err, domain.ErrUsernameAlreadyUsed)
}

func (s *UserCommandTestSuite) TestRemoveUserAuth_AlreadyDeletedInIdentityProvider() {
	// Arrange
	events := s.emitted()
	s.mockUsers.On("GetByID", s.ctx, "user-2").Return(linkedUser("user-2", "biz-1", "kc-2"), nil)
	s.mockIdP.On("DeleteUser", s.ctx, "kc-2").Return(errors.New("timeout"))
	s.mockIdP.On("GetUser", s.ctx, "kc-2").Return(nil, &keycloak.APIError{Operation: "get user", StatusCode: 404})

	// Act
	result, err := s.service.RemoveUserAuth(s.ctx, ownerToken("owner-1", "biz-1"), dto.RemoveUserAuthArgs{UserID: "user-2"})

	// Assert
	s.Require().NoError(err)
	s.Equal("User auth of the user with id: user-2 has been deleted", result.Message)
	s.Equal(domain.EventUserAuthDeleted, (*events)[0].EventType)
}

func (s *UserCommandTestSuite) TestRemoveUserAuth_DeletionNotConfirmed() {
	// Arrange
	s.mockUsers.On("GetByID", s.ctx, "user-2").Return(linkedUser("user-2", "biz-1", "kc-2"), nil)
	s.mockIdP.On("DeleteUser", s.ctx, "kc-2").Return(errors.New("timeout"))
	s.mockIdP.On("GetUser", s.ctx, "kc-2").Return(&keycloak.UserRepresentation{ID: "kc-2"}, nil)

	// Act
	_, err := s.service.RemoveUserAuth(s.ctx, ownerToken("owner-1", "biz-1"), dto.RemoveUserAuthArgs{UserID: "user-2"})

	// Assert
	s.ErrorIs(err, domain.ErrDeletionNotConfirmed)
	s.mockEmitter.AssertNotCalled(s.T(), "Emit", mock.Anything, mock.Anything)
}

func (s *UserCommandTestSuite) TestResetUserPassword_Success() {
	// Arrange
	events := s.emitted()
	s.mockUsers.On("GetByID", s.ctx, "user-2").Return(linkedUser("user-2", "biz-1", "kc-2"), nil)
	s.mockIdP.On("ResetPassword", s.ctx, "kc-2", keycloak.PasswordCredential("n3w-pass", false)).Return(nil)

	// Act
	result, err := s.service.ResetUserPassword(s.ctx, ownerToken("owner-1", "biz-1"), dto.ResetUserPasswordArgs{
		UserID: "user-2",
		Input:  &dto.PasswordInput{Password: "n3w-pass"},
	})

	// Assert
	s.Require().NoError(err)
	s.Equal("Password of the user with id: user-2 has been changed", result.Message)
	s.Equal(domain.EventUserAuthPasswordUpdated, (*events)[0].EventType)
}

func (s *UserCommandTestSuite) TestAddRolesToTheUser_Success() {
	// Arrange
	events := s.emitted()
	s.mockUsers.On("GetByID", s.ctx, "user-2").Return(storedUser("user-2", "biz-1"), nil)

	// Act
	result, err := s.service.AddRolesToTheUser(s.ctx, adminToken("admin-1"), dto.UserRolesArgs{
		UserID: "user-2",
		Input:  &dto.RolesInput{Roles: []string{"SYSADMIN", "POS"}},
	})

	// Assert
	s.Require().NoError(err)
	s.Equal("User roles: SYSADMIN,POS had been added to the user with id: user-2", result.Message)
	var payload domain.UserRolesPayload
	s.Require().NoError((*events)[0].Decode(&payload))
	s.Equal([]string{"SYSADMIN", "POS"}, payload.UserRoles.Roles)
}

func (s *UserCommandTestSuite) TestRemoveRolesFromUser_Success() {
	// Arrange
	events := s.emitted()
	s.mockUsers.On("GetByID", s.ctx, "user-2").Return(storedUser("user-2", "biz-1"), nil)

	// Act
	result, err := s.service.RemoveRolesFromUser(s.ctx, ownerToken("owner-1", "biz-1"), dto.UserRolesArgs{
		UserID: "user-2",
		Input:  &dto.RolesInput{Roles: []string{"POS"}},
	})

	// Assert
	s.Require().NoError(err)
	s.Equal("User roles: POS had been removed from the user with id: user-2", result.Message)
	s.Equal(domain.EventUserRolesRemoved, (*events)[0].EventType)
}

func (s *UserCommandTestSuite) TestExportUserHistory_Success() {
	// Arrange
	s.mockUsers.On("GetByID", s.ctx, "user-2").Return(storedUser("user-2", "biz-1"), nil)
	s.mockHistory.On("SendHistoryExport", s.ctx, "user-2", "biz-1", "owner.owner-1").Return(nil)

	// Act
	result, err := s.service.ExportUserHistory(s.ctx, ownerToken("owner-1", "biz-1"), dto.ExportUserHistoryArgs{UserID: "user-2"})

	// Assert
	s.Require().NoError(err)
	s.Equal(200, result.Code)
	s.mockEmitter.AssertNotCalled(s.T(), "Emit", mock.Anything, mock.Anything)
}
