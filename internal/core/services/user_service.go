package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/novacollege/nodues_backend/internal/apperrors"
	"github.com/novacollege/nodues_backend/internal/core/domain"
	portsrepo "github.com/novacollege/nodues_backend/internal/core/ports/repositories"
	portssvc "github.com/novacollege/nodues_backend/internal/core/ports/services"
	"github.com/novacollege/nodues_backend/internal/dto"
	"github.com/novacollege/nodues_backend/internal/middleware"
	"github.com/novacollege/nodues_backend/internal/utils"
)

// userService provides user management and authentication operations.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
	notifier portssvc.NotifierSvcFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, notifier portssvc.NotifierSvcFacade) portssvc.UserSvcFacade {
	return &userService{
		userRepo: userRepo,
		notifier: notifier,
	}
}

// Ensure userService implements the portssvc.UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.userRepo.FindUserByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("%w: username %q is already taken", apperrors.ErrConflict, req.Username)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}
	if _, err := s.userRepo.FindUserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: email %q is already registered", apperrors.ErrConflict, req.Email)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email availability: %w", err)
	}

	roles := make([]domain.Role, len(req.Roles))
	for i, r := range req.Roles {
		role, err := domain.ParseRole(r)
		if err != nil {
			return nil, err
		}
		roles[i] = role
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		UniqueCode:   req.UniqueCode,
		Department:   domain.Department(req.Department),
		Roles:        roles,
		IsEnabled:    true,
		AuthProvider: "local",
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", slog.String("error", err.Error()), slog.String("username", req.Username))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("User created", slog.String("user_id", user.UserID), slog.String("username", user.Username))

	s.dispatchNotification(ctx, domain.Notification{
		Kind:      domain.NotifyUserCredentials,
		Recipient: user.Email,
		Subject:   "Your account has been created",
		Body:      fmt.Sprintf("Hello %s,\n\nAn account has been created for you. Username: %s\n\nPlease log in and change your password.", user.FullName(), user.Username),
		Meta:      map[string]string{"userID": user.UserID},
	})

	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID %s: %w", userID, err)
	}
	return user, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) ListUsersByDepartment(ctx context.Context, department domain.Department) ([]domain.User, error) {
	if !department.IsKnown() {
		return nil, fmt.Errorf("%w: unknown department %q", apperrors.ErrValidation, department)
	}
	users, err := s.userRepo.FindUsersByDepartment(ctx, department)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by department: %w", err)
	}
	return users, nil
}

func (s *userService) GetSignatureImage(ctx context.Context, userID string) ([]byte, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	if len(user.SignatureImage) == 0 {
		return nil, fmt.Errorf("%w: no signature image uploaded for user %s", apperrors.ErrNotFound, userID)
	}
	return user.SignatureImage, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user %s for update: %w", userID, err)
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Department != nil {
		dept := domain.Department(*req.Department)
		if !dept.IsKnown() {
			return nil, fmt.Errorf("%w: unknown department %q", apperrors.ErrValidation, dept)
		}
		user.Department = dept
	}
	if req.Roles != nil {
		roles := make([]domain.Role, len(*req.Roles))
		for i, r := range *req.Roles {
			role, err := domain.ParseRole(r)
			if err != nil {
				return nil, err
			}
			roles[i] = role
		}
		user.Roles = roles
	}
	if req.IsEnabled != nil {
		user.IsEnabled = *req.IsEnabled
	}

	user.LastUpdatedAt = time.Now().UTC()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to update user", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user %s: %w", userID, err)
	}
	return user, nil
}

func (s *userService) UploadSignatureImage(ctx context.Context, userID string, image []byte, requestingUserID string) error {
	if len(image) == 0 {
		return fmt.Errorf("%w: signature image is empty", apperrors.ErrValidation)
	}
	// Only the owner or an admin may replace a stored signature; the
	// handler enforces role checks, the service enforces ownership.
	if userID != requestingUserID {
		requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
		if err != nil {
			return fmt.Errorf("failed to resolve requesting user: %w", err)
		}
		if !requester.HasRole(domain.RoleAdmin) {
			return fmt.Errorf("%w: cannot upload a signature for another user", apperrors.ErrForbidden)
		}
	}
	if err := s.userRepo.UpdateSignatureImage(ctx, userID, image, requestingUserID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to store signature image for user %s: %w", userID, err)
	}
	return nil
}

func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, refreshTokenExpiryTime); err != nil {
		return fmt.Errorf("failed to update refresh token for user %s: %w", userID, err)
	}
	return nil
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear refresh token for user %s: %w", userID, err)
	}
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now().UTC(), requestingUserID); err != nil {
		logger.Error("Failed to delete user", slog.String("error", err.Error()), slog.String("user_id", userID))
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}
	logger.Info("User deleted", slog.String("user_id", userID), slog.String("deleted_by", requestingUserID))
	return nil
}

func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same failure shape for unknown user and wrong password.
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user for authentication: %w", err)
	}
	if !user.IsEnabled {
		logger.Warn("Login attempt for disabled account", slog.String("username", username))
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Warn("Password mismatch", slog.String("username", username))
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *userService) FindOrCreateFromGoogle(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if info == nil || info.ID == "" || info.Email == "" {
		return nil, fmt.Errorf("%w: incomplete google profile", apperrors.ErrValidation)
	}
	if !info.VerifiedEmail {
		return nil, fmt.Errorf("%w: google account email is not verified", apperrors.ErrUnauthorized)
	}

	user, err := s.userRepo.FindUserByProviderDetails(ctx, "google", info.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up google user: %w", err)
	}

	// Link by email when a local account already exists for this address.
	if existing, err := s.userRepo.FindUserByEmail(ctx, info.Email); err == nil {
		existing.AuthProvider = "google"
		existing.ProviderUserID = info.ID
		existing.LastUpdatedAt = time.Now().UTC()
		existing.LastUpdatedBy = existing.UserID
		if err := s.userRepo.UpdateUser(ctx, *existing); err != nil {
			return nil, fmt.Errorf("failed to link google account: %w", err)
		}
		return existing, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	// First sign-in: register a student account pending profile completion.
	now := time.Now().UTC()
	username := strings.Split(info.Email, "@")[0]
	newUser := domain.User{
		UserID:         uuid.NewString(),
		Username:       username,
		Email:          info.Email,
		FirstName:      info.GivenName,
		LastName:       info.FamilyName,
		Roles:          []domain.Role{domain.RoleStudent},
		IsEnabled:      true,
		AuthProvider:   "google",
		ProviderUserID: info.ID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "oauth:google",
			LastUpdatedAt: now,
			LastUpdatedBy: "oauth:google",
		},
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		logger.Error("Failed to register google user", slog.String("error", err.Error()), slog.String("email", info.Email))
		return nil, fmt.Errorf("failed to register google user: %w", err)
	}
	logger.Info("Registered new user from google sign-in", slog.String("user_id", newUser.UserID))
	return &newUser, nil
}

// dispatchNotification hands a notice to the notifier, logging and
// suppressing any failure. Callers must invoke it only after their own
// persistence has succeeded.
func (s *userService) dispatchNotification(ctx context.Context, n domain.Notification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Notification dispatch failed",
			slog.String("kind", string(n.Kind)), slog.String("error", err.Error()))
	}
}
