package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/novacollege/nodues_backend/internal/apperrors"
	"github.com/novacollege/nodues_backend/internal/core/domain"
	portssvc "github.com/novacollege/nodues_backend/internal/core/ports/services"
	"github.com/novacollege/nodues_backend/internal/core/services"
	"github.com/novacollege/nodues_backend/internal/dto"
)

type DueServiceTestSuite struct {
	suite.Suite
	mockDueRepo  *MockDueRepository
	mockUserRepo *MockUserRepository
	mockNotifier *MockNotifier
	service      portssvc.DueSvcFacade
	ctx          context.Context
}

func (suite *DueServiceTestSuite) SetupTest() {
	suite.mockDueRepo = new(MockDueRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockNotifier = new(MockNotifier)
	suite.service = services.NewDueService(suite.mockDueRepo, suite.mockUserRepo, suite.mockNotifier)
	suite.ctx = context.Background()
}

func TestDueServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DueServiceTestSuite))
}

func pendingDue(dueID, studentUserID string, dept domain.Department) *domain.Due {
	return &domain.Due{
		DueID:         dueID,
		StudentUserID: studentUserID,
		Department:    dept,
		Description:   "lost book fine",
		Amount:        decimal.NewFromInt(250),
		DueDate:       time.Now().UTC().Add(7 * 24 * time.Hour),
		Status:        domain.PaymentPending,
	}
}

func (suite *DueServiceTestSuite) TestCreateDue_Success() {
	studentID := "user-stu-1"
	actor := deptAdminActor("user-lib-1", domain.DeptLibrary)
	req := dto.CreateDueRequest{
		StudentUserID: studentID,
		Department:    string(domain.DeptLibrary),
		Description:   "lost book fine",
		Amount:        decimal.NewFromInt(250),
		DueDate:       time.Now().UTC().Add(7 * 24 * time.Hour),
	}

	suite.mockUserRepo.On("FindUserByID", suite.ctx, studentID).Return(newStudentUser(studentID), nil).Once()
	suite.mockDueRepo.On("SaveDue", suite.ctx, mock.MatchedBy(func(due domain.Due) bool {
		return due.StudentUserID == studentID &&
			due.Department == domain.DeptLibrary &&
			due.Status == domain.PaymentPending &&
			due.Amount.Equal(decimal.NewFromInt(250))
	})).Return(nil).Once()
	suite.mockNotifier.On("Notify", suite.ctx, mock.MatchedBy(func(n domain.Notification) bool {
		return n.Kind == domain.NotifyDueAdded && n.Recipient == "student1@example.com"
	})).Return(nil).Once()

	due, err := suite.service.CreateDue(suite.ctx, actor, req)

	suite.NoError(err)
	suite.Require().NotNil(due)
	suite.Equal(domain.PaymentPending, due.Status)
	suite.NotEmpty(due.DueID)
	suite.mockDueRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *DueServiceTestSuite) TestCreateDue_DepartmentAdminPinnedToOwnDepartment() {
	studentID := "user-stu-1"
	actor := deptAdminActor("user-lib-1", domain.DeptLibrary)
	// The request names SPORTS; a department admin's dues land in their own
	// department regardless.
	req := dto.CreateDueRequest{
		StudentUserID: studentID,
		Department:    string(domain.DeptSports),
		Description:   "fine",
		Amount:        decimal.NewFromInt(100),
		DueDate:       time.Now().UTC().Add(24 * time.Hour),
	}

	suite.mockUserRepo.On("FindUserByID", suite.ctx, studentID).Return(newStudentUser(studentID), nil).Once()
	suite.mockDueRepo.On("SaveDue", suite.ctx, mock.MatchedBy(func(due domain.Due) bool {
		return due.Department == domain.DeptLibrary
	})).Return(nil).Once()
	suite.mockNotifier.On("Notify", suite.ctx, mock.AnythingOfType("domain.Notification")).Return(nil).Once()

	due, err := suite.service.CreateDue(suite.ctx, actor, req)

	suite.NoError(err)
	suite.Equal(domain.DeptLibrary, due.Department)
}

func (suite *DueServiceTestSuite) TestCreateDue_NonPositiveAmount() {
	actor := adminActor("user-admin")
	req := dto.CreateDueRequest{
		StudentUserID: "user-stu-1",
		Department:    string(domain.DeptLibrary),
		Description:   "fine",
		Amount:        decimal.Zero,
		DueDate:       time.Now().UTC(),
	}

	due, err := suite.service.CreateDue(suite.ctx, actor, req)

	suite.Nil(due)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDueRepo.AssertNotCalled(suite.T(), "SaveDue", mock.Anything, mock.Anything)
}

func (suite *DueServiceTestSuite) TestCreateDue_StudentForbidden() {
	actor := studentActor("user-stu-1")
	req := dto.CreateDueRequest{
		StudentUserID: "user-stu-1",
		Department:    string(domain.DeptLibrary),
		Description:   "fine",
		Amount:        decimal.NewFromInt(10),
		DueDate:       time.Now().UTC(),
	}

	due, err := suite.service.CreateDue(suite.ctx, actor, req)

	suite.Nil(due)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *DueServiceTestSuite) TestPayDue_Success() {
	studentID := "user-stu-1"
	actor := studentActor(studentID)
	due := pendingDue("due-1", studentID, domain.DeptLibrary)

	suite.mockDueRepo.On("FindDueByID", suite.ctx, "due-1").Return(due, nil).Once()
	suite.mockDueRepo.On("UpdateDue", suite.ctx, mock.MatchedBy(func(d domain.Due) bool {
		return d.Status == domain.PaymentPaid &&
			d.PaymentDate != nil &&
			d.PaymentReference == "UPI-42"
	})).Return(nil).Once()

	paid, err := suite.service.PayDue(suite.ctx, actor, "due-1", "UPI-42")

	suite.NoError(err)
	suite.Equal(domain.PaymentPaid, paid.Status)
	suite.Equal("UPI-42", paid.PaymentReference)
	suite.mockDueRepo.AssertExpectations(suite.T())
}

func (suite *DueServiceTestSuite) TestPayDue_OtherStudentsDueForbidden() {
	actor := studentActor("user-stu-2")
	due := pendingDue("due-1", "user-stu-1", domain.DeptLibrary)

	suite.mockDueRepo.On("FindDueByID", suite.ctx, "due-1").Return(due, nil).Once()

	paid, err := suite.service.PayDue(suite.ctx, actor, "due-1", "UPI-42")

	suite.Nil(paid)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *DueServiceTestSuite) TestPayDue_RejectedDueCanBeRepaid() {
	studentID := "user-stu-1"
	actor := studentActor(studentID)
	due := pendingDue("due-1", studentID, domain.DeptLibrary)
	due.Status = domain.PaymentRejected
	due.PaymentReference = "UPI-42"

	suite.mockDueRepo.On("FindDueByID", suite.ctx, "due-1").Return(due, nil).Once()
	suite.mockDueRepo.On("UpdateDue", suite.ctx, mock.MatchedBy(func(d domain.Due) bool {
		return d.Status == domain.PaymentPaid &&
			d.PaymentDate != nil &&
			d.PaymentReference == "UPI-44"
	})).Return(nil).Once()

	paid, err := suite.service.PayDue(suite.ctx, actor, "due-1", "UPI-44")

	suite.NoError(err)
	suite.Equal(domain.PaymentPaid, paid.Status)
	suite.Equal("UPI-44", paid.PaymentReference)
	suite.mockDueRepo.AssertExpectations(suite.T())
}

func (suite *DueServiceTestSuite) TestPayDue_AlreadyPaidConflict() {
	studentID := "user-stu-1"
	actor := studentActor(studentID)
	due := pendingDue("due-1", studentID, domain.DeptLibrary)
	due.Status = domain.PaymentPaid

	suite.mockDueRepo.On("FindDueByID", suite.ctx, "due-1").Return(due, nil).Once()

	paid, err := suite.service.PayDue(suite.ctx, actor, "due-1", "UPI-43")

	suite.Nil(paid)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *DueServiceTestSuite) TestApproveDue_Success() {
	studentID := "user-stu-1"
	approverID := "user-lib-1"
	actor := deptAdminActor(approverID, domain.DeptLibrary)
	due := pendingDue("due-1", studentID, domain.DeptLibrary)
	due.Status = domain.PaymentPaid

	suite.mockDueRepo.On("FindDueByID", suite.ctx, "due-1").Return(due, nil).Once()
	suite.mockDueRepo.On("UpdateDue", suite.ctx, mock.MatchedBy(func(d domain.Due) bool {
		return d.Status == domain.PaymentApproved &&
			d.ApprovedBy != nil && *d.ApprovedBy == approverID &&
			d.ApprovalDate != nil
	})).Return(nil).Once()
	suite.mockUserRepo.On("FindUserByID", suite.ctx, studentID).Return(newStudentUser(studentID), nil).Once()
	suite.mockNotifier.On("Notify", suite.ctx, mock.MatchedBy(func(n domain.Notification) bool {
		return n.Kind == domain.NotifyDueApproved
	})).Return(nil).Once()

	approved, err := suite.service.ApproveDue(suite.ctx, actor, "due-1")

	suite.NoError(err)
	suite.Equal(domain.PaymentApproved, approved.Status)
	suite.mockDueRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *DueServiceTestSuite) TestApproveDue_WrongDepartmentForbidden() {
	actor := deptAdminActor("user-sports-1", domain.DeptSports)
	due := pendingDue("due-1", "user-stu-1", domain.DeptLibrary)
	due.Status = domain.PaymentPaid

	suite.mockDueRepo.On("FindDueByID", suite.ctx, "due-1").Return(due, nil).Once()

	approved, err := suite.service.ApproveDue(suite.ctx, actor, "due-1")

	suite.Nil(approved)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *DueServiceTestSuite) TestApproveDue_UnpaidConflict() {
	actor := deptAdminActor("user-lib-1", domain.DeptLibrary)
	due := pendingDue("due-1", "user-stu-1", domain.DeptLibrary)

	suite.mockDueRepo.On("FindDueByID", suite.ctx, "due-1").Return(due, nil).Once()

	approved, err := suite.service.ApproveDue(suite.ctx, actor, "due-1")

	suite.Nil(approved)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *DueServiceTestSuite) TestRejectDue_ApprovedDueConflict() {
	actor := deptAdminActor("user-lib-1", domain.DeptLibrary)
	due := pendingDue("due-1", "user-stu-1", domain.DeptLibrary)
	due.Status = domain.PaymentApproved

	suite.mockDueRepo.On("FindDueByID", suite.ctx, "due-1").Return(due, nil).Once()

	rejected, err := suite.service.RejectDue(suite.ctx, actor, "due-1")

	suite.Nil(rejected)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *DueServiceTestSuite) TestDeleteDue_PaidDueNotDeletable() {
	actor := adminActor("user-admin")
	due := pendingDue("due-1", "user-stu-1", domain.DeptLibrary)
	due.Status = domain.PaymentPaid

	suite.mockDueRepo.On("FindDueByID", suite.ctx, "due-1").Return(due, nil).Once()

	err := suite.service.DeleteDue(suite.ctx, actor, "due-1")

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockDueRepo.AssertNotCalled(suite.T(), "DeleteDue", mock.Anything, mock.Anything)
}

func (suite *DueServiceTestSuite) TestGenerateDueReceipt_Success() {
	studentID := "user-stu-1"
	actor := studentActor(studentID)
	due := pendingDue("due-1", studentID, domain.DeptLibrary)
	due.Status = domain.PaymentApproved

	suite.mockDueRepo.On("FindDueByID", suite.ctx, "due-1").Return(due, nil).Once()
	suite.mockDueRepo.On("UpdateDue", suite.ctx, mock.MatchedBy(func(d domain.Due) bool {
		return d.ReceiptGenerated && d.ReceiptNumber != nil
	})).Return(nil).Once()

	withReceipt, err := suite.service.GenerateDueReceipt(suite.ctx, actor, "due-1")

	suite.NoError(err)
	suite.True(withReceipt.ReceiptGenerated)
	suite.Require().NotNil(withReceipt.ReceiptNumber)
	suite.True(strings.HasPrefix(*withReceipt.ReceiptNumber, "IPS-LIBRARY-due-1-"))
}

func (suite *DueServiceTestSuite) TestGenerateDueReceipt_Idempotent() {
	studentID := "user-stu-1"
	actor := studentActor(studentID)
	due := pendingDue("due-1", studentID, domain.DeptLibrary)
	due.Status = domain.PaymentApproved
	existing := "IPS-LIBRARY-due-1-20260101120000"
	due.ReceiptGenerated = true
	due.ReceiptNumber = &existing

	suite.mockDueRepo.On("FindDueByID", suite.ctx, "due-1").Return(due, nil).Once()

	withReceipt, err := suite.service.GenerateDueReceipt(suite.ctx, actor, "due-1")

	suite.NoError(err)
	suite.Equal(existing, *withReceipt.ReceiptNumber)
	suite.mockDueRepo.AssertNotCalled(suite.T(), "UpdateDue", mock.Anything, mock.Anything)
}

func (suite *DueServiceTestSuite) TestGenerateDueReceipt_UnapprovedConflict() {
	studentID := "user-stu-1"
	actor := studentActor(studentID)
	due := pendingDue("due-1", studentID, domain.DeptLibrary)
	due.Status = domain.PaymentPaid

	suite.mockDueRepo.On("FindDueByID", suite.ctx, "due-1").Return(due, nil).Once()

	withReceipt, err := suite.service.GenerateDueReceipt(suite.ctx, actor, "due-1")

	suite.Nil(withReceipt)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *DueServiceTestSuite) TestHasClearedAllDues_NoDuesMeansCleared() {
	studentID := "user-stu-1"

	suite.mockDueRepo.On("CountNotApprovedByStudent", suite.ctx, studentID).Return(0, nil).Once()

	cleared, err := suite.service.HasClearedAllDues(suite.ctx, studentID)

	suite.NoError(err)
	suite.True(cleared)
}

func (suite *DueServiceTestSuite) TestHasClearedAllDues_OutstandingDueBlocks() {
	studentID := "user-stu-1"

	suite.mockDueRepo.On("CountNotApprovedByStudent", suite.ctx, studentID).Return(2, nil).Once()

	cleared, err := suite.service.HasClearedAllDues(suite.ctx, studentID)

	suite.NoError(err)
	suite.False(cleared)
}

func (suite *DueServiceTestSuite) TestHasClearedAllDues_RepositoryError() {
	studentID := "user-stu-1"
	repoErr := errors.New("connection refused")

	suite.mockDueRepo.On("CountNotApprovedByStudent", suite.ctx, studentID).Return(0, repoErr).Once()

	cleared, err := suite.service.HasClearedAllDues(suite.ctx, studentID)

	suite.False(cleared)
	suite.ErrorIs(err, repoErr)
}

func (suite *DueServiceTestSuite) TestHasPendingDuesInDepartment() {
	studentID := "user-stu-1"

	suite.mockDueRepo.On("CountNotApprovedByStudentAndDepartment", suite.ctx, studentID, domain.DeptLibrary).Return(1, nil).Once()

	pending, err := suite.service.HasPendingDuesInDepartment(suite.ctx, studentID, domain.DeptLibrary)

	suite.NoError(err)
	suite.True(pending)
}

func (suite *DueServiceTestSuite) TestListDuesForActor_AdminUsesPagedListing() {
	actor := adminActor("user-admin")
	page := []domain.Due{*pendingDue("due-1", "user-stu-1", domain.DeptLibrary)}
	next := "token-2"

	suite.mockDueRepo.On("ListDues", suite.ctx, 25, (*string)(nil)).Return(page, &next, nil).Once()

	dues, nextToken, err := suite.service.ListDuesForActor(suite.ctx, actor, 25, nil)

	suite.NoError(err)
	suite.Len(dues, 1)
	suite.Require().NotNil(nextToken)
	suite.Equal("token-2", *nextToken)
}

func (suite *DueServiceTestSuite) TestListDuesForActor_DepartmentAdminScoped() {
	actor := deptAdminActor("user-lib-1", domain.DeptLibrary)
	deptDues := []domain.Due{*pendingDue("due-1", "user-stu-1", domain.DeptLibrary)}

	suite.mockDueRepo.On("FindDuesByDepartment", suite.ctx, domain.DeptLibrary).Return(deptDues, nil).Once()

	dues, nextToken, err := suite.service.ListDuesForActor(suite.ctx, actor, 25, nil)

	suite.NoError(err)
	suite.Len(dues, 1)
	suite.Nil(nextToken)
}

func (suite *DueServiceTestSuite) TestListDuesByStudent_OtherStudentForbidden() {
	actor := studentActor("user-stu-2")

	dues, err := suite.service.ListDuesByStudent(suite.ctx, actor, "user-stu-1")

	suite.Nil(dues)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *DueServiceTestSuite) TestListDuesByStudent_DepartmentScopedView() {
	actor := deptAdminActor("user-lib-1", domain.DeptLibrary)
	deptDues := []domain.Due{*pendingDue("due-1", "user-stu-1", domain.DeptLibrary)}

	suite.mockDueRepo.On("FindDuesByStudentAndDepartment", suite.ctx, "user-stu-1", domain.DeptLibrary).Return(deptDues, nil).Once()

	dues, err := suite.service.ListDuesByStudent(suite.ctx, actor, "user-stu-1")

	suite.NoError(err)
	suite.Len(dues, 1)
}
