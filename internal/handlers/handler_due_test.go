package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/novacollege/nodues_backend/internal/apperrors"
	"github.com/novacollege/nodues_backend/internal/core/domain"
	portssvc "github.com/novacollege/nodues_backend/internal/core/ports/services"
	"github.com/novacollege/nodues_backend/internal/dto"
	"github.com/novacollege/nodues_backend/internal/handlers"
	"github.com/novacollege/nodues_backend/internal/middleware"
	"github.com/novacollege/nodues_backend/internal/utils"
)

// --- Mock DueService ---
type MockDueService struct {
	mock.Mock
}

func (m *MockDueService) GetDueByID(ctx context.Context, dueID string) (*domain.Due, error) {
	args := m.Called(ctx, dueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Due), args.Error(1)
}

func (m *MockDueService) ListDuesForActor(ctx context.Context, actor domain.Actor, limit int, nextToken *string) ([]domain.Due, *string, error) {
	args := m.Called(ctx, actor, limit, nextToken)
	var dues []domain.Due
	if args.Get(0) != nil {
		dues = args.Get(0).([]domain.Due)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return dues, token, args.Error(2)
}

func (m *MockDueService) ListDuesByStudent(ctx context.Context, actor domain.Actor, studentUserID string) ([]domain.Due, error) {
	args := m.Called(ctx, actor, studentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Due), args.Error(1)
}

func (m *MockDueService) CreateDue(ctx context.Context, actor domain.Actor, req dto.CreateDueRequest) (*domain.Due, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Due), args.Error(1)
}

func (m *MockDueService) PayDue(ctx context.Context, actor domain.Actor, dueID string, paymentReference string) (*domain.Due, error) {
	args := m.Called(ctx, actor, dueID, paymentReference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Due), args.Error(1)
}

func (m *MockDueService) ApproveDue(ctx context.Context, actor domain.Actor, dueID string) (*domain.Due, error) {
	args := m.Called(ctx, actor, dueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Due), args.Error(1)
}

func (m *MockDueService) RejectDue(ctx context.Context, actor domain.Actor, dueID string) (*domain.Due, error) {
	args := m.Called(ctx, actor, dueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Due), args.Error(1)
}

func (m *MockDueService) DeleteDue(ctx context.Context, actor domain.Actor, dueID string) error {
	args := m.Called(ctx, actor, dueID)
	return args.Error(0)
}

func (m *MockDueService) GenerateDueReceipt(ctx context.Context, actor domain.Actor, dueID string) (*domain.Due, error) {
	args := m.Called(ctx, actor, dueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Due), args.Error(1)
}

func (m *MockDueService) HasClearedAllDues(ctx context.Context, studentUserID string) (bool, error) {
	args := m.Called(ctx, studentUserID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDueService) HasPendingDuesInDepartment(ctx context.Context, studentUserID string, department domain.Department) (bool, error) {
	args := m.Called(ctx, studentUserID, department)
	return args.Bool(0), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.DueSvcFacade = (*MockDueService)(nil)

// --- Test Suite ---
type DueHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockDueService *MockDueService
	jwtSecret      string
}

func (suite *DueHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterCustomValidators()
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockDueService = new(MockDueService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterDueRoutes(v1, suite.mockDueService)
}

func TestDueHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DueHandlerTestSuite))
}

// generateTestToken creates a signed access token carrying the given roles.
func (suite *DueHandlerTestSuite) generateTestToken(userID string, dept domain.Department, roles ...domain.Role) string {
	user := &domain.User{
		UserID:     userID,
		Department: dept,
		Roles:      roles,
	}
	token, err := utils.GenerateJWT(user, suite.jwtSecret, time.Hour, "nodues-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *DueHandlerTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	suite.router.ServeHTTP(rr, req)
	return rr
}

func testDue(dueID, studentUserID string) *domain.Due {
	return &domain.Due{
		DueID:         dueID,
		StudentUserID: studentUserID,
		Department:    domain.DeptLibrary,
		Description:   "lost book fine",
		Amount:        decimal.NewFromInt(250),
		DueDate:       time.Now().UTC().Add(7 * 24 * time.Hour),
		Status:        domain.PaymentPending,
	}
}

func (suite *DueHandlerTestSuite) TestCreateDue_Success() {
	token := suite.generateTestToken("user-lib-1", domain.DeptLibrary, domain.RoleDepartmentAdmin)
	body := map[string]any{
		"studentUserID": "user-stu-1",
		"department":    "LIBRARY",
		"description":   "lost book fine",
		"amount":        "250",
		"dueDate":       time.Now().UTC().Add(7 * 24 * time.Hour).Format(time.RFC3339),
	}
	payload, _ := json.Marshal(body)

	created := testDue("due-1", "user-stu-1")
	suite.mockDueService.On("CreateDue", mock.Anything, mock.MatchedBy(func(actor domain.Actor) bool {
		return actor.UserID == "user-lib-1" && actor.HasRole(domain.RoleDepartmentAdmin)
	}), mock.MatchedBy(func(req dto.CreateDueRequest) bool {
		return req.StudentUserID == "user-stu-1" && req.Department == "LIBRARY"
	})).Return(created, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dues", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rr := suite.serve(req)

	suite.Equal(http.StatusCreated, rr.Code)
	var resp dto.DueResponse
	suite.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	suite.Equal("due-1", resp.DueID)
	suite.Equal("PENDING", resp.Status)
	suite.mockDueService.AssertExpectations(suite.T())
}

func (suite *DueHandlerTestSuite) TestCreateDue_StudentRoleRejected() {
	token := suite.generateTestToken("user-stu-1", domain.DeptCSE, domain.RoleStudent)
	payload, _ := json.Marshal(map[string]any{
		"studentUserID": "user-stu-1",
		"department":    "LIBRARY",
		"description":   "fine",
		"amount":        "10",
		"dueDate":       time.Now().UTC().Format(time.RFC3339),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dues", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rr := suite.serve(req)

	suite.Equal(http.StatusForbidden, rr.Code)
	suite.mockDueService.AssertNotCalled(suite.T(), "CreateDue", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DueHandlerTestSuite) TestCreateDue_UnknownDepartmentRejected() {
	token := suite.generateTestToken("user-admin", "", domain.RoleAdmin)
	payload, _ := json.Marshal(map[string]any{
		"studentUserID": "user-stu-1",
		"department":    "ASTROLOGY",
		"description":   "fine",
		"amount":        "10",
		"dueDate":       time.Now().UTC().Format(time.RFC3339),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dues", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rr := suite.serve(req)

	suite.Equal(http.StatusBadRequest, rr.Code)
}

func (suite *DueHandlerTestSuite) TestListDues_Success() {
	token := suite.generateTestToken("user-admin", "", domain.RoleAdmin)
	page := []domain.Due{*testDue("due-1", "user-stu-1")}
	next := "token-2"

	suite.mockDueService.On("ListDuesForActor", mock.Anything, mock.AnythingOfType("domain.Actor"), 20, (*string)(nil)).Return(page, &next, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dues", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := suite.serve(req)

	suite.Equal(http.StatusOK, rr.Code)
	var resp dto.ListDuesResponse
	suite.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	suite.Len(resp.Dues, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("token-2", *resp.NextToken)
}

func (suite *DueHandlerTestSuite) TestListDues_Unauthenticated() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dues", nil)
	rr := suite.serve(req)

	suite.Equal(http.StatusUnauthorized, rr.Code)
}

func (suite *DueHandlerTestSuite) TestGetDue_StudentCannotSeeOthers() {
	token := suite.generateTestToken("user-stu-2", domain.DeptCSE, domain.RoleStudent)
	due := testDue("due-1", "user-stu-1")

	suite.mockDueService.On("GetDueByID", mock.Anything, "due-1").Return(due, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dues/due-1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := suite.serve(req)

	suite.Equal(http.StatusForbidden, rr.Code)
}

func (suite *DueHandlerTestSuite) TestPayDue_Success() {
	token := suite.generateTestToken("user-stu-1", domain.DeptCSE, domain.RoleStudent)
	paid := testDue("due-1", "user-stu-1")
	paid.Status = domain.PaymentPaid
	paid.PaymentReference = "UPI-42"

	suite.mockDueService.On("PayDue", mock.Anything, mock.MatchedBy(func(actor domain.Actor) bool {
		return actor.UserID == "user-stu-1"
	}), "due-1", "UPI-42").Return(paid, nil).Once()

	payload, _ := json.Marshal(dto.PayDueRequest{PaymentReference: "UPI-42"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/dues/due-1/pay", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rr := suite.serve(req)

	suite.Equal(http.StatusOK, rr.Code)
	var resp dto.DueResponse
	suite.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	suite.Equal("PAID", resp.Status)
	suite.mockDueService.AssertExpectations(suite.T())
}

func (suite *DueHandlerTestSuite) TestApproveDue_ConflictMapsTo409() {
	token := suite.generateTestToken("user-lib-1", domain.DeptLibrary, domain.RoleDepartmentAdmin)

	suite.mockDueService.On("ApproveDue", mock.Anything, mock.AnythingOfType("domain.Actor"), "due-1").
		Return(nil, fmt.Errorf("%w: due due-1 is PENDING, only PAID dues can be approved", apperrors.ErrConflict)).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dues/due-1/approve", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := suite.serve(req)

	suite.Equal(http.StatusConflict, rr.Code)
}

func (suite *DueHandlerTestSuite) TestApproveDue_ForbiddenMapsTo403() {
	token := suite.generateTestToken("user-sports-1", domain.DeptSports, domain.RoleDepartmentAdmin)

	suite.mockDueService.On("ApproveDue", mock.Anything, mock.AnythingOfType("domain.Actor"), "due-1").
		Return(nil, fmt.Errorf("%w: due belongs to LIBRARY, actor is scoped to SPORTS", apperrors.ErrForbidden)).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dues/due-1/approve", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := suite.serve(req)

	suite.Equal(http.StatusForbidden, rr.Code)
}

func (suite *DueHandlerTestSuite) TestGenerateReceipt_NotFoundMapsTo404() {
	token := suite.generateTestToken("user-stu-1", domain.DeptCSE, domain.RoleStudent)

	suite.mockDueService.On("GenerateDueReceipt", mock.Anything, mock.AnythingOfType("domain.Actor"), "due-missing").
		Return(nil, fmt.Errorf("failed to find due due-missing: %w", apperrors.ErrNotFound)).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dues/due-missing/receipt", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := suite.serve(req)

	suite.Equal(http.StatusNotFound, rr.Code)
}

func (suite *DueHandlerTestSuite) TestDeleteDue_RequiresStaffRole() {
	token := suite.generateTestToken("user-stu-1", domain.DeptCSE, domain.RoleStudent)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/dues/due-1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := suite.serve(req)

	suite.Equal(http.StatusForbidden, rr.Code)
	suite.mockDueService.AssertNotCalled(suite.T(), "DeleteDue", mock.Anything, mock.Anything, mock.Anything)
}
