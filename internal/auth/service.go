// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/carterperez-dev/contacts-api/internal/core"
	"github.com/carterperez-dev/contacts-api/internal/middleware"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// ContactInfo is the slice of a contact that authentication needs.
// Role is "" when the contact has no role.
type ContactInfo struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

type ContactProvider interface {
	GetByEmail(ctx context.Context, email string) (*ContactInfo, error)
	GetByID(ctx context.Context, id int64) (*ContactInfo, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type Service struct {
	jwt      *JWTManager
	contacts ContactProvider
}

func NewService(jwt *JWTManager, contacts ContactProvider) *Service {
	return &Service{
		jwt:      jwt,
		contacts: contacts,
	}
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*TokenModel, error) {
	contact, err := s.contacts.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // equalizes timing for unknown emails
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&contact.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	if newHash != "" {
		if err := s.contacts.UpdatePassword(ctx, contact.ID, newHash); err != nil {
			slog.WarnContext(ctx, "password rehash failed",
				"contact_id", contact.ID,
				"error", err,
			)
		}
	}

	return s.issueTokens(contact)
}

// Refresh trades a valid refresh token for a new pair. The contact must
// still exist.
func (s *Service) Refresh(
	ctx context.Context,
	refreshToken string,
) (*TokenModel, error) {
	claims, err := s.jwt.VerifyToken(refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}

	contact, err := s.contacts.GetByID(ctx, claims.ContactID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("refresh: %w", core.ErrTokenInvalid)
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}

	return s.issueTokens(contact)
}

// VerifyAccessToken resolves a bearer token to the current contact. The
// role comes from the stored row, not from the token.
func (s *Service) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	claims, err := s.jwt.VerifyToken(token, tokenTypeAccess)
	if err != nil {
		return nil, err
	}

	contact, err := s.contacts.GetByID(ctx, claims.ContactID)
	if err != nil {
		return nil, fmt.Errorf("resolve contact: %w", err)
	}

	return &middleware.AccessTokenClaims{
		ContactID: contact.ID,
		Email:     contact.Email,
		Role:      contact.Role,
		TokenID:   claims.TokenID,
	}, nil
}

func (s *Service) GetCurrentContact(
	ctx context.Context,
	contactID int64,
) (*MeResponse, error) {
	if contactID < 1 {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	contact, err := s.contacts.GetByID(ctx, contactID)
	if err != nil {
		return nil, err
	}

	resp := &MeResponse{
		ID:        contact.ID,
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		Email:     contact.Email,
		CreatedAt: contact.CreatedAt,
	}
	if contact.Role != "" {
		role := contact.Role
		resp.Role = &role
	}

	return resp, nil
}

func (s *Service) issueTokens(contact *ContactInfo) (*TokenModel, error) {
	access, err := s.jwt.CreateAccessToken(contact.ID, contact.Email)
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	refresh, err := s.jwt.CreateRefreshToken(contact.ID, contact.Email)
	if err != nil {
		return nil, fmt.Errorf("create refresh token: %w", err)
	}

	return &TokenModel{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    tokenTypeBearer,
	}, nil
}

var _ middleware.TokenVerifier = (*Service)(nil)
