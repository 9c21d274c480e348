package repository

import (
	"context"

	"github.com/istl-web/auth-service/internal/domain"
)

type UserRepository interface {
	// Create inserts a new user and returns it with the assigned ID.
	// A mobile/email collision surfaces as domain.ErrDuplicateUser.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// FindByIdentifier matches either the mobile number or the email.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)

	// FindByMobileOrEmail matches a record holding either value — the
	// duplicate probe used at registration.
	FindByMobileOrEmail(ctx context.Context, mobile, email string) (*domain.User, error)

	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)

	UpdateName(ctx context.Context, id int64, name string) error
	UpdateMobile(ctx context.Context, id int64, mobile string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}
