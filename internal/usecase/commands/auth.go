package commands

import (
	"context"
	"log/slog"

	"marketplace-api/internal/domain/auth"
	"marketplace-api/internal/domain/user"
	"marketplace-api/internal/infra"
	"marketplace-api/internal/pkg/errs"
	"marketplace-api/internal/pkg/jwt"
	"marketplace-api/internal/pkg/password"
	"marketplace-api/internal/usecase/queries"
	"marketplace-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrUserInactive       = errs.New("user inactive")
	ErrPasswordMismatch   = errs.New("passwords do not match")
	ErrUserAlreadyExists  = errs.New("username or email already taken")
	ErrTokenGeneration    = errs.New("token generation failed")
)

type RegisterRequest struct {
	Username         string
	Email            string
	Password         string
	RepeatedPassword string
	Type             string
}

// AuthResult carries the issued token plus the identity block both auth
// endpoints respond with.
type AuthResult struct {
	Token    string
	UserID   uuid.UUID
	Username string
	Email    string
	Role     user.Role
}

type AuthCommands interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, credentials auth.Credentials) (*AuthResult, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	users      queries.UserReadStore
	jwtService *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, users queries.UserReadStore, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		users:      users,
		jwtService: jwtService,
	}
}

// Register creates the account and its empty profile in one transaction,
// then issues a token so registration doubles as the first login.
func (a *authCommandsImpl) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	username, err := user.NewUsername(req.Username)
	if err != nil {
		return nil, err
	}
	email, err := user.NewEmail(req.Email)
	if err != nil {
		return nil, err
	}
	pw, err := user.NewPassword(req.Password)
	if err != nil {
		return nil, err
	}
	if req.Password != req.RepeatedPassword {
		return nil, ErrPasswordMismatch
	}
	role, err := user.NewRole(req.Type)
	if err != nil {
		return nil, err
	}
	if !role.IsRegisterable() {
		return nil, user.ErrInvalidRole
	}

	hash, err := password.HashPassword(pw.Value())
	if err != nil {
		return nil, errs.Wrap(err, "failed to hash password")
	}

	u := user.NewUser(username, email, hash, role)

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, cerr := tx.Users().Create(ctx, tx.DB(), u); cerr != nil {
			if infra.IsKind(cerr, infra.KindDuplicateKey) {
				return errs.Mark(cerr, ErrUserAlreadyExists)
			}
			return cerr
		}
		return tx.Profiles().CreateEmpty(ctx, tx.DB(), u.ID())
	})
	if err != nil {
		return nil, err
	}

	token, err := a.jwtService.GenerateToken(u.ID(), role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &AuthResult{
		Token:    token,
		UserID:   u.ID(),
		Username: username.Value(),
		Email:    email.Value(),
		Role:     role,
	}, nil
}

func (a *authCommandsImpl) Login(ctx context.Context, credentials auth.Credentials) (*AuthResult, error) {
	creds, err := a.users.FindCredentialsByUsername(ctx, credentials.Username().Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrInvalidCredentials)
		}
		return nil, errs.Wrap(err, "failed to look up user")
	}
	if err := password.ComparePassword(creds.PasswordHash, credentials.Password().Value()); err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}
	if !creds.IsActive {
		return nil, ErrUserInactive
	}

	role, err := user.NewRole(creds.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	token, err := a.jwtService.GenerateToken(creds.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	// Login already succeeded at this point; a failed last_login update is
	// logged, not surfaced.
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if uerr := tx.Users().UpdateLastLogin(ctx, tx.DB(), creds.ID); uerr != nil {
			slog.Warn("failed to update last login", "user_id", creds.ID, "error", uerr.Error())
		}
		return nil
	})
	if err != nil {
		slog.Warn("transaction failed during login", "user_id", creds.ID, "error", err.Error())
	}

	identity, err := a.users.FindAuthorizedByID(ctx, creds.ID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load user identity")
	}

	return &AuthResult{
		Token:    token,
		UserID:   creds.ID,
		Username: identity.Username,
		Email:    identity.Email,
		Role:     role,
	}, nil
}
