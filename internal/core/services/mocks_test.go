package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/novacollege/nodues_backend/internal/core/domain"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) FindUsersByDepartment(ctx context.Context, department domain.Department) ([]domain.User, error) {
	args := m.Called(ctx, department)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) FindDepartmentAdmin(ctx context.Context, department domain.Department) (*domain.User, error) {
	args := m.Called(ctx, department)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderDetails(ctx context.Context, authProvider, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, authProvider, providerUserID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateSignatureImage(ctx context.Context, userID string, image []byte, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, userID, image, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deleterUserID string) error {
	args := m.Called(ctx, userID, deletedAt, deleterUserID)
	return args.Error(0)
}

// --- Mock StudentRepository ---

type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) FindStudentByID(ctx context.Context, studentID string) (*domain.StudentProfile, error) {
	args := m.Called(ctx, studentID)
	var student *domain.StudentProfile
	if args.Get(0) != nil {
		student = args.Get(0).(*domain.StudentProfile)
	}
	return student, args.Error(1)
}

func (m *MockStudentRepository) FindStudentByUserID(ctx context.Context, userID string) (*domain.StudentProfile, error) {
	args := m.Called(ctx, userID)
	var student *domain.StudentProfile
	if args.Get(0) != nil {
		student = args.Get(0).(*domain.StudentProfile)
	}
	return student, args.Error(1)
}

func (m *MockStudentRepository) FindStudentByRollNumber(ctx context.Context, rollNumber string) (*domain.StudentProfile, error) {
	args := m.Called(ctx, rollNumber)
	var student *domain.StudentProfile
	if args.Get(0) != nil {
		student = args.Get(0).(*domain.StudentProfile)
	}
	return student, args.Error(1)
}

func (m *MockStudentRepository) FindStudents(ctx context.Context, limit, offset int) ([]domain.StudentProfile, error) {
	args := m.Called(ctx, limit, offset)
	var students []domain.StudentProfile
	if args.Get(0) != nil {
		students = args.Get(0).([]domain.StudentProfile)
	}
	return students, args.Error(1)
}

func (m *MockStudentRepository) SaveStudent(ctx context.Context, student domain.StudentProfile) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) UpdateStudent(ctx context.Context, student domain.StudentProfile) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) DeleteStudent(ctx context.Context, studentID string) error {
	args := m.Called(ctx, studentID)
	return args.Error(0)
}

// --- Mock DueRepository ---

type MockDueRepository struct {
	mock.Mock
}

func (m *MockDueRepository) FindDueByID(ctx context.Context, dueID string) (*domain.Due, error) {
	args := m.Called(ctx, dueID)
	var due *domain.Due
	if args.Get(0) != nil {
		due = args.Get(0).(*domain.Due)
	}
	return due, args.Error(1)
}

func (m *MockDueRepository) FindDuesByStudent(ctx context.Context, studentUserID string) ([]domain.Due, error) {
	args := m.Called(ctx, studentUserID)
	var dues []domain.Due
	if args.Get(0) != nil {
		dues = args.Get(0).([]domain.Due)
	}
	return dues, args.Error(1)
}

func (m *MockDueRepository) FindDuesByStudentAndDepartment(ctx context.Context, studentUserID string, department domain.Department) ([]domain.Due, error) {
	args := m.Called(ctx, studentUserID, department)
	var dues []domain.Due
	if args.Get(0) != nil {
		dues = args.Get(0).([]domain.Due)
	}
	return dues, args.Error(1)
}

func (m *MockDueRepository) FindDuesByDepartment(ctx context.Context, department domain.Department) ([]domain.Due, error) {
	args := m.Called(ctx, department)
	var dues []domain.Due
	if args.Get(0) != nil {
		dues = args.Get(0).([]domain.Due)
	}
	return dues, args.Error(1)
}

func (m *MockDueRepository) ListDues(ctx context.Context, limit int, nextToken *string) ([]domain.Due, *string, error) {
	args := m.Called(ctx, limit, nextToken)
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

func (m *MockDueRepository) CountNotApprovedByStudent(ctx context.Context, studentUserID string) (int, error) {
	args := m.Called(ctx, studentUserID)
	return args.Int(0), args.Error(1)
}

func (m *MockDueRepository) CountNotApprovedByStudentAndDepartment(ctx context.Context, studentUserID string, department domain.Department) (int, error) {
	args := m.Called(ctx, studentUserID, department)
	return args.Int(0), args.Error(1)
}

func (m *MockDueRepository) SaveDue(ctx context.Context, due domain.Due) error {
	args := m.Called(ctx, due)
	return args.Error(0)
}

func (m *MockDueRepository) UpdateDue(ctx context.Context, due domain.Due) error {
	args := m.Called(ctx, due)
	return args.Error(0)
}

func (m *MockDueRepository) DeleteDue(ctx context.Context, dueID string) error {
	args := m.Called(ctx, dueID)
	return args.Error(0)
}

// --- Mock CertificateRepository ---

type MockCertificateRepository struct {
	mock.Mock
}

func (m *MockCertificateRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	var tx pgx.Tx
	if args.Get(0) != nil {
		tx = args.Get(0).(pgx.Tx)
	}
	return tx, args.Error(1)
}

func (m *MockCertificateRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCertificateRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCertificateRepository) FindCertificateByID(ctx context.Context, certificateID string) (*domain.NoDuesCertificate, error) {
	args := m.Called(ctx, certificateID)
	var cert *domain.NoDuesCertificate
	if args.Get(0) != nil {
		cert = args.Get(0).(*domain.NoDuesCertificate)
	}
	return cert, args.Error(1)
}

func (m *MockCertificateRepository) FindCertificateByNumber(ctx context.Context, certificateNumber string) (*domain.NoDuesCertificate, error) {
	args := m.Called(ctx, certificateNumber)
	var cert *domain.NoDuesCertificate
	if args.Get(0) != nil {
		cert = args.Get(0).(*domain.NoDuesCertificate)
	}
	return cert, args.Error(1)
}

func (m *MockCertificateRepository) FindCertificatesByStudent(ctx context.Context, studentUserID string) ([]domain.NoDuesCertificate, error) {
	args := m.Called(ctx, studentUserID)
	var certs []domain.NoDuesCertificate
	if args.Get(0) != nil {
		certs = args.Get(0).([]domain.NoDuesCertificate)
	}
	return certs, args.Error(1)
}

func (m *MockCertificateRepository) FindCertificatesByStatus(ctx context.Context, status domain.CertificateStatus) ([]domain.NoDuesCertificate, error) {
	args := m.Called(ctx, status)
	var certs []domain.NoDuesCertificate
	if args.Get(0) != nil {
		certs = args.Get(0).([]domain.NoDuesCertificate)
	}
	return certs, args.Error(1)
}

func (m *MockCertificateRepository) FindActiveCertificateByStudent(ctx context.Context, studentUserID string) (*domain.NoDuesCertificate, error) {
	args := m.Called(ctx, studentUserID)
	var cert *domain.NoDuesCertificate
	if args.Get(0) != nil {
		cert = args.Get(0).(*domain.NoDuesCertificate)
	}
	return cert, args.Error(1)
}

func (m *MockCertificateRepository) FindCertificatesAwaitingPrincipal(ctx context.Context) ([]domain.NoDuesCertificate, error) {
	args := m.Called(ctx)
	var certs []domain.NoDuesCertificate
	if args.Get(0) != nil {
		certs = args.Get(0).([]domain.NoDuesCertificate)
	}
	return certs, args.Error(1)
}

func (m *MockCertificateRepository) FindCertificatesByStudentDepartment(ctx context.Context, department domain.Department) ([]domain.NoDuesCertificate, error) {
	args := m.Called(ctx, department)
	var certs []domain.NoDuesCertificate
	if args.Get(0) != nil {
		certs = args.Get(0).([]domain.NoDuesCertificate)
	}
	return certs, args.Error(1)
}

func (m *MockCertificateRepository) FindCertificatesWithPendingSignature(ctx context.Context, department domain.Department) ([]domain.NoDuesCertificate, error) {
	args := m.Called(ctx, department)
	var certs []domain.NoDuesCertificate
	if args.Get(0) != nil {
		certs = args.Get(0).([]domain.NoDuesCertificate)
	}
	return certs, args.Error(1)
}

func (m *MockCertificateRepository) SaveCertificate(ctx context.Context, certificate domain.NoDuesCertificate) error {
	args := m.Called(ctx, certificate)
	return args.Error(0)
}

func (m *MockCertificateRepository) FindCertificateByIDForUpdate(ctx context.Context, tx pgx.Tx, certificateID string) (*domain.NoDuesCertificate, error) {
	args := m.Called(ctx, tx, certificateID)
	var cert *domain.NoDuesCertificate
	if args.Get(0) != nil {
		cert = args.Get(0).(*domain.NoDuesCertificate)
	}
	return cert, args.Error(1)
}

func (m *MockCertificateRepository) UpdateSignatureInTx(ctx context.Context, tx pgx.Tx, signature domain.DepartmentSignature) error {
	args := m.Called(ctx, tx, signature)
	return args.Error(0)
}

func (m *MockCertificateRepository) UpdateCertificateInTx(ctx context.Context, tx pgx.Tx, certificate domain.NoDuesCertificate) error {
	args := m.Called(ctx, tx, certificate)
	return args.Error(0)
}

func (m *MockCertificateRepository) DeleteCertificate(ctx context.Context, certificateID string) error {
	args := m.Called(ctx, certificateID)
	return args.Error(0)
}

func (m *MockCertificateRepository) FindSignaturesByStudent(ctx context.Context, studentUserID string) ([]domain.DepartmentSignature, error) {
	args := m.Called(ctx, studentUserID)
	var sigs []domain.DepartmentSignature
	if args.Get(0) != nil {
		sigs = args.Get(0).([]domain.DepartmentSignature)
	}
	return sigs, args.Error(1)
}

func (m *MockCertificateRepository) FindSignaturesByDepartmentAndStatus(ctx context.Context, department domain.Department, status domain.SignatureStatus) ([]domain.DepartmentSignature, error) {
	args := m.Called(ctx, department, status)
	var sigs []domain.DepartmentSignature
	if args.Get(0) != nil {
		sigs = args.Get(0).([]domain.DepartmentSignature)
	}
	return sigs, args.Error(1)
}

func (m *MockCertificateRepository) FindSignatureByStudentAndDepartment(ctx context.Context, studentUserID string, department domain.Department) (*domain.DepartmentSignature, error) {
	args := m.Called(ctx, studentUserID, department)
	var sig *domain.DepartmentSignature
	if args.Get(0) != nil {
		sig = args.Get(0).(*domain.DepartmentSignature)
	}
	return sig, args.Error(1)
}

func (m *MockCertificateRepository) UpsertStandaloneSignature(ctx context.Context, signature domain.DepartmentSignature) (*domain.DepartmentSignature, error) {
	args := m.Called(ctx, signature)
	var sig *domain.DepartmentSignature
	if args.Get(0) != nil {
		sig = args.Get(0).(*domain.DepartmentSignature)
	}
	return sig, args.Error(1)
}

// --- Mock EligibilityService ---

type MockEligibilityService struct {
	mock.Mock
}

func (m *MockEligibilityService) HasClearedAllDues(ctx context.Context, studentUserID string) (bool, error) {
	args := m.Called(ctx, studentUserID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEligibilityService) HasPendingDuesInDepartment(ctx context.Context, studentUserID string, department domain.Department) (bool, error) {
	args := m.Called(ctx, studentUserID, department)
	return args.Bool(0), args.Error(1)
}

// --- Mock Notifier ---

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, notification domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}
