package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/istl-web/auth-service/internal/auth"
	"github.com/istl-web/auth-service/internal/domain"
	"github.com/istl-web/auth-service/internal/email"
	"github.com/istl-web/auth-service/internal/metrics"
	"github.com/istl-web/auth-service/internal/repository"
)

var (
	mobileRe = regexp.MustCompile(`^\d{10}$`)
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

type AuthUsecase struct {
	users         repository.UserRepository
	email         email.Sender
	hasher        *auth.Hasher
	tokens        *auth.Tokens
	resetLinkBase string
}

func NewAuthUsecase(
	users repository.UserRepository,
	emailSender email.Sender,
	hasher *auth.Hasher,
	tokens *auth.Tokens,
	resetLinkBase string,
) *AuthUsecase {
	return &AuthUsecase{
		users:         users,
		email:         emailSender,
		hasher:        hasher,
		tokens:        tokens,
		resetLinkBase: resetLinkBase,
	}
}

// Register creates a new account with role "user". The store's uniqueness
// constraint is the arbiter for concurrent registrations racing on the same
// mobile or email — the second writer gets ErrDuplicateUser.
func (u *AuthUsecase) Register(ctx context.Context, name, mobile, emailAddr, password string) (*domain.User, error) {
	if name == "" || mobile == "" || emailAddr == "" || password == "" {
		return nil, fmt.Errorf("%w: name, mobile number, email, and password are required", domain.ErrValidation)
	}
	if !mobileRe.MatchString(mobile) {
		return nil, fmt.Errorf("%w: mobile number must be 10 digits", domain.ErrValidation)
	}
	if !emailRe.MatchString(emailAddr) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrValidation)
	}

	_, err := u.users.FindByMobileOrEmail(ctx, mobile, emailAddr)
	if err == nil {
		return nil, domain.ErrDuplicateUser
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("find existing user: %w", err)
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	created, err := u.users.Create(ctx, &domain.User{
		Name:         name,
		MobileNumber: mobile,
		Email:        emailAddr,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	metrics.RegistrationsTotal.Inc()
	return created, nil
}

// Login authenticates by email or mobile number and returns a signed session
// token. An unknown identifier and a wrong password both come back as
// ErrInvalidCredentials — callers must not be able to tell them apart.
func (u *AuthUsecase) Login(ctx context.Context, identifier, password string) (string, *domain.User, error) {
	if identifier == "" || password == "" {
		return "", nil, fmt.Errorf("%w: identifier and password are required", domain.ErrValidation)
	}

	user, err := u.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if !u.hasher.Verify(password, user.PasswordHash) {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueSession(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("issue session token: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return token, user, nil
}

// ChangeName accepts any string, the empty one included.
func (u *AuthUsecase) ChangeName(ctx context.Context, userID int64, name string) error {
	if err := u.users.UpdateName(ctx, userID, name); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("update name: %w", err)
	}
	return nil
}

// ChangeMobile validates the shape only; uniqueness is left to the store's
// constraint, which surfaces a conflict as ErrDuplicateUser.
func (u *AuthUsecase) ChangeMobile(ctx context.Context, userID int64, mobile string) error {
	if !mobileRe.MatchString(mobile) {
		return fmt.Errorf("%w: mobile number must be 10 digits", domain.ErrValidation)
	}
	if err := u.users.UpdateMobile(ctx, userID, mobile); err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) || errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("update mobile: %w", err)
	}
	return nil
}

func (u *AuthUsecase) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: old password and new password are required", domain.ErrValidation)
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("find user: %w", err)
	}

	if !u.hasher.Verify(oldPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := u.users.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// ForgotPassword issues a reset token and mails the reset link. Unlike Login,
// an unknown email surfaces as ErrUserNotFound — the original behavior is
// preserved even though it exposes account existence.
func (u *AuthUsecase) ForgotPassword(ctx context.Context, emailAddr string) error {
	if emailAddr == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("find user: %w", err)
	}

	token, err := u.tokens.IssueReset(user.ID)
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}

	link := u.resetLinkBase + "/reset-password?token=" + token
	text := "Click the following link to reset your password: " + link
	if err := u.email.Send(ctx, user.Email, "Password Reset Request", text); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}

	metrics.PasswordResetsTotal.WithLabelValues("requested").Inc()
	return nil
}

// ResetPassword redeems a reset token and overwrites the subject's password
// hash. Tokens are stateless, so a link stays redeemable until it expires.
func (u *AuthUsecase) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	if rawToken == "" || newPassword == "" {
		return fmt.Errorf("%w: token and new password are required", domain.ErrValidation)
	}

	userID, err := u.tokens.VerifyReset(rawToken)
	if err != nil {
		return domain.ErrTokenInvalid
	}

	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := u.users.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	metrics.PasswordResetsTotal.WithLabelValues("completed").Inc()
	return nil
}
