package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"univer-cinema/internal/data/entity"
	"univer-cinema/internal/data/repository"
	"univer-cinema/internal/dto/request"
	"univer-cinema/internal/dto/response"
	"univer-cinema/pkg/apperror"
	"univer-cinema/pkg/mailer"
	"univer-cinema/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResetRequestedMessage is returned for every reset request, whether or not the email is known.
const ResetRequestedMessage = "If an account with that email exists, a password reset link has been sent."

const (
	msgPasswordMismatch = "Password fields didn't match."
	msgInvalidToken     = "Invalid or expired token."
)

// ClientInfo describes the caller a session is issued to.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest, client ClientInfo) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error)
	Logout(ctx context.Context, token uuid.UUID) error
	RequestPasswordReset(ctx context.Context, req *request.PasswordResetRequest) (string, error)
	ConfirmPasswordReset(ctx context.Context, req *request.PasswordResetConfirmRequest) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	mailer mailer.Mailer
	now    func() time.Time
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, deps Deps, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		mailer: deps.Mailer,
		now:    deps.Now,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest, client ClientInfo) (*response.AuthResponse, error) {
	// 1. Validate input
	if err := validate(req); err != nil {
		return nil, err
	}
	if req.Password != req.Password2 {
		return nil, apperror.ValidationField("password", msgPasswordMismatch)
	}
	if problems := utils.CheckPasswordPolicy(req.Password, req.Username, req.Email); len(problems) > 0 {
		return nil, apperror.ValidationField("password", strings.Join(problems, " "))
	}

	// 2. Uniqueness of username and email
	fields, err := identityTaken(ctx, s.repo.User, req.Username, req.Email, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		return nil, apperror.Validation("Validation failed", fields)
	}

	// 3. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. Create user
	now := s.now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hashedPassword,
		Role:         entity.RoleCustomer,
		IsActive:     true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Validation("Validation failed", map[string]string{
				"username": "A user with that username or email already exists.",
			})
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	// 5. Auto login after register
	session, err := s.createSession(ctx, user.ID, client)
	if err != nil {
		s.log.Warn("Failed to create session after register",
			zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	// email first, then username
	user, err := s.repo.User.FindByEmail(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if user == nil {
		user, err = s.repo.User.FindByUsername(ctx, req.Username)
		if err != nil {
			return nil, fmt.Errorf("find user by username: %w", err)
		}
	}

	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid login attempt", zap.String("identifier", req.Username))
		return nil, apperror.Unauthorized("Invalid credentials")
	}

	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, apperror.Forbidden("Account is deactivated")
	}

	session, err := s.createSession(ctx, user.ID, client)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token uuid.UUID) error {
	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *authService) RequestPasswordReset(ctx context.Context, req *request.PasswordResetRequest) (string, error) {
	if err := validate(req); err != nil {
		return "", err
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", fmt.Errorf("find user by email: %w", err)
	}
	if user == nil || !user.IsActive {
		s.log.Info("Password reset requested for unknown email")
		return ResetRequestedMessage, nil
	}

	token, err := utils.GenerateToken(utils.ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}

	now := s.now()
	reset := &entity.PasswordReset{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: now.Add(time.Duration(s.config.Reset.ExpiryHours) * time.Hour),
	}

	if err := s.repo.PasswordReset.Create(ctx, reset); err != nil {
		return "", fmt.Errorf("create password reset: %w", err)
	}

	go s.sendResetMail(user.Email, user.Username, s.resetLink(token))

	s.log.Info("Password reset issued",
		zap.String("user_id", user.ID.String()),
		zap.Time("expires_at", reset.ExpiresAt))

	return ResetRequestedMessage, nil
}

func (s *authService) ConfirmPasswordReset(ctx context.Context, req *request.PasswordResetConfirmRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	if req.Password != req.Password2 {
		return apperror.ValidationField("password", msgPasswordMismatch)
	}

	reset, err := s.repo.PasswordReset.FindByToken(ctx, req.Token)
	if err != nil {
		return fmt.Errorf("find password reset: %w", err)
	}
	if reset == nil || !reset.IsValid(s.now()) {
		return apperror.InvalidToken(msgInvalidToken)
	}

	user, err := s.repo.User.FindByID(ctx, reset.UserID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return apperror.InvalidToken(msgInvalidToken)
	}

	if problems := utils.CheckPasswordPolicy(req.Password, user.Username, user.Email); len(problems) > 0 {
		return apperror.ValidationField("password", strings.Join(problems, " "))
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		// the conditional update decides which concurrent confirm wins
		marked, err := tx.PasswordReset.MarkUsed(ctx, reset.ID)
		if err != nil {
			return fmt.Errorf("mark reset used: %w", err)
		}
		if !marked {
			return apperror.InvalidToken(msgInvalidToken)
		}

		if err := tx.User.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
			return fmt.Errorf("update password: %w", err)
		}

		if err := tx.Session.RevokeAllUserSessions(ctx, user.ID); err != nil {
			return fmt.Errorf("revoke sessions: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("Password reset completed", zap.String("user_id", user.ID.String()))
	return nil
}

// ==================== HELPER METHODS ====================

// identityTaken returns field errors for a username or email owned by someone other than self.
func identityTaken(ctx context.Context, users repository.UserRepository, username, email string, self uuid.UUID) (map[string]string, error) {
	fields := map[string]string{}

	if username != "" {
		existing, err := users.FindByUsername(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("find user by username: %w", err)
		}
		if existing != nil && existing.ID != self {
			fields["username"] = "A user with that username already exists."
		}
	}

	if email != "" {
		existing, err := users.FindByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("find user by email: %w", err)
		}
		if existing != nil && existing.ID != self {
			fields["email"] = "A user with that email already exists."
		}
	}

	return fields, nil
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID, client ClientInfo) (*entity.Session, error) {
	now := s.now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    userID,
		Token:     utils.GenerateSessionToken(),
		UserAgent: optional(client.UserAgent),
		IPAddress: optional(client.IPAddress),
		ExpiresAt: now.Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *authService) resetLink(token string) string {
	u, err := url.Parse(s.config.Reset.FrontendURL)
	if err != nil {
		return s.config.Reset.FrontendURL + "?token=" + url.QueryEscape(token)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String()
}

func (s *authService) sendResetMail(email, username, link string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.mailer.SendPasswordReset(ctx, email, username, link); err != nil {
		s.log.Error("Failed to send password reset mail", zap.Error(err), zap.String("email", email))
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
