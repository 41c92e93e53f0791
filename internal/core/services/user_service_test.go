package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/novacollege/nodues_backend/internal/apperrors"
	"github.com/novacollege/nodues_backend/internal/core/domain"
	portssvc "github.com/novacollege/nodues_backend/internal/core/ports/services"
	"github.com/novacollege/nodues_backend/internal/core/services"
	"github.com/novacollege/nodues_backend/internal/dto"
	"github.com/novacollege/nodues_backend/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	mockNotifier *MockNotifier
	service      portssvc.UserSvcFacade
	ctx          context.Context
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewUserService(suite.mockUserRepo, suite.mockNotifier)
	suite.ctx = context.Background()
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func createUserRequest() dto.CreateUserRequest {
	return dto.CreateUserRequest{
		Username:   "averma",
		Email:      "averma@example.com",
		Password:   "s3cretpass",
		FirstName:  "Asha",
		LastName:   "Verma",
		UniqueCode: "0105CS221234",
		Department: string(domain.DeptCSE),
		Roles:      []string{string(domain.RoleStudent)},
	}
}

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	req := createUserRequest()

	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, req.Username).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", suite.ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", suite.ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Username == req.Username &&
			user.Email == req.Email &&
			user.IsEnabled &&
			user.AuthProvider == "local" &&
			user.HasRole(domain.RoleStudent) &&
			user.PasswordHash != "" &&
			user.PasswordHash != req.Password &&
			user.CreatedBy == "user-admin"
	})).Return(nil).Once()
	suite.mockNotifier.On("Notify", suite.ctx, mock.MatchedBy(func(n domain.Notification) bool {
		return n.Kind == domain.NotifyUserCredentials && n.Recipient == req.Email
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(suite.ctx, req, "user-admin")

	suite.NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.True(utils.CheckPasswordHash(req.Password, user.PasswordHash))
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_UsernameTaken() {
	req := createUserRequest()
	existing := newStudentUser("user-existing")

	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, req.Username).Return(existing, nil).Once()

	user, err := suite.service.CreateUser(suite.ctx, req, "user-admin")

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_EmailTaken() {
	req := createUserRequest()
	existing := newStudentUser("user-existing")

	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, req.Username).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", suite.ctx, req.Email).Return(existing, nil).Once()

	user, err := suite.service.CreateUser(suite.ctx, req, "user-admin")

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *UserServiceTestSuite) TestCreateUser_UnknownRole() {
	req := createUserRequest()
	req.Roles = []string{"SUPERUSER"}

	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, req.Username).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", suite.ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.CreateUser(suite.ctx, req, "user-admin")

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	hash, err := utils.HashPassword("s3cretpass")
	suite.Require().NoError(err)
	user := newStudentUser("user-stu-1")
	user.PasswordHash = hash

	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "student1").Return(user, nil).Once()

	authenticated, err := suite.service.AuthenticateUser(suite.ctx, "student1", "s3cretpass")

	suite.NoError(err)
	suite.Equal("user-stu-1", authenticated.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownUser() {
	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	authenticated, err := suite.service.AuthenticateUser(suite.ctx, "ghost", "whatever")

	suite.Nil(authenticated)
	// Unknown user and wrong password must be indistinguishable.
	suite.Equal(apperrors.ErrUnauthorized, err)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	hash, err := utils.HashPassword("rightpass")
	suite.Require().NoError(err)
	user := newStudentUser("user-stu-1")
	user.PasswordHash = hash

	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "student1").Return(user, nil).Once()

	authenticated, err := suite.service.AuthenticateUser(suite.ctx, "student1", "wrongpass")

	suite.Nil(authenticated)
	suite.Equal(apperrors.ErrUnauthorized, err)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_DisabledAccount() {
	hash, err := utils.HashPassword("s3cretpass")
	suite.Require().NoError(err)
	user := newStudentUser("user-stu-1")
	user.PasswordHash = hash
	user.IsEnabled = false

	suite.mockUserRepo.On("FindUserByUsername", suite.ctx, "student1").Return(user, nil).Once()

	authenticated, err := suite.service.AuthenticateUser(suite.ctx, "student1", "s3cretpass")

	suite.Nil(authenticated)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestUpdateUser_Success() {
	user := newStudentUser("user-stu-1")
	newFirst := "Aisha"

	suite.mockUserRepo.On("FindUserByID", suite.ctx, "user-stu-1").Return(user, nil).Once()
	suite.mockUserRepo.On("UpdateUser", suite.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.FirstName == "Aisha" && u.LastUpdatedBy == "user-admin"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateUser(suite.ctx, "user-stu-1", dto.UpdateUserRequest{FirstName: &newFirst}, "user-admin")

	suite.NoError(err)
	suite.Equal("Aisha", updated.FirstName)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_UnknownDepartment() {
	user := newStudentUser("user-stu-1")
	dept := "ASTROLOGY"

	suite.mockUserRepo.On("FindUserByID", suite.ctx, "user-stu-1").Return(user, nil).Once()

	updated, err := suite.service.UpdateUser(suite.ctx, "user-stu-1", dto.UpdateUserRequest{Department: &dept}, "user-admin")

	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUploadSignatureImage_ForAnotherUserRequiresAdmin() {
	requester := newStudentUser("user-stu-2")

	suite.mockUserRepo.On("FindUserByID", suite.ctx, "user-stu-2").Return(requester, nil).Once()

	err := suite.service.UploadSignatureImage(suite.ctx, "user-stu-1", []byte{0x89, 0x50}, "user-stu-2")

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateSignatureImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUploadSignatureImage_EmptyImage() {
	err := suite.service.UploadSignatureImage(suite.ctx, "user-stu-1", nil, "user-stu-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestGetSignatureImage_NotUploaded() {
	user := newStudentUser("user-stu-1")

	suite.mockUserRepo.On("FindUserByID", suite.ctx, "user-stu-1").Return(user, nil).Once()

	image, err := suite.service.GetSignatureImage(suite.ctx, "user-stu-1")

	suite.Nil(image)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *UserServiceTestSuite) TestFindOrCreateFromGoogle_ExistingProviderUser() {
	user := newStudentUser("user-stu-1")
	info := &domain.GoogleUserInfo{ID: "g-123", Email: "student1@example.com", VerifiedEmail: true}

	suite.mockUserRepo.On("FindUserByProviderDetails", suite.ctx, "google", "g-123").Return(user, nil).Once()

	found, err := suite.service.FindOrCreateFromGoogle(suite.ctx, info)

	suite.NoError(err)
	suite.Equal("user-stu-1", found.UserID)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestFindOrCreateFromGoogle_LinksLocalAccountByEmail() {
	user := newStudentUser("user-stu-1")
	info := &domain.GoogleUserInfo{ID: "g-123", Email: "student1@example.com", VerifiedEmail: true}

	suite.mockUserRepo.On("FindUserByProviderDetails", suite.ctx, "google", "g-123").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", suite.ctx, "student1@example.com").Return(user, nil).Once()
	suite.mockUserRepo.On("UpdateUser", suite.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.AuthProvider == "google" && u.ProviderUserID == "g-123"
	})).Return(nil).Once()

	linked, err := suite.service.FindOrCreateFromGoogle(suite.ctx, info)

	suite.NoError(err)
	suite.Equal("user-stu-1", linked.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestFindOrCreateFromGoogle_RegistersNewStudent() {
	info := &domain.GoogleUserInfo{
		ID:            "g-456",
		Email:         "newstudent@example.com",
		VerifiedEmail: true,
		GivenName:     "Nisha",
		FamilyName:    "Rao",
	}

	suite.mockUserRepo.On("FindUserByProviderDetails", suite.ctx, "google", "g-456").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", suite.ctx, "newstudent@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", suite.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "newstudent" &&
			u.AuthProvider == "google" &&
			u.ProviderUserID == "g-456" &&
			u.HasRole(domain.RoleStudent)
	})).Return(nil).Once()

	created, err := suite.service.FindOrCreateFromGoogle(suite.ctx, info)

	suite.NoError(err)
	suite.Equal("Nisha", created.FirstName)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestFindOrCreateFromGoogle_UnverifiedEmail() {
	info := &domain.GoogleUserInfo{ID: "g-123", Email: "student1@example.com", VerifiedEmail: false}

	created, err := suite.service.FindOrCreateFromGoogle(suite.ctx, info)

	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}
