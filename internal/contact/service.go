// AngelaMos | 2026
// service.go

package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/contacts-api/internal/auth"
	"github.com/carterperez-dev/contacts-api/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateContact(
	ctx context.Context,
	req ContactModel,
) (_ *Contact, err error) {
	ctx, span := core.StartSpan(ctx, "contact.create")
	defer func() {
		core.SetSpanError(span, err)
		span.End()
	}()

	contact, err := s.fromModel(req)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, contact.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("create contact: %w", core.ErrDuplicateKey)
	}

	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int64("contact.id", contact.ID))
	return contact, nil
}

func (s *Service) ListContacts(ctx context.Context) ([]Contact, error) {
	ctx, span := core.StartSpan(ctx, "contact.list")
	defer span.End()

	contacts, err := s.repo.List(ctx)
	core.SetSpanError(span, err)
	return contacts, err
}

func (s *Service) GetContact(ctx context.Context, id int64) (*Contact, error) {
	ctx, span := core.StartSpan(ctx, "contact.get",
		attribute.Int64("contact.id", id))
	defer span.End()

	contact, err := s.repo.GetByID(ctx, id)
	core.SetSpanError(span, err)
	return contact, err
}

// UpdateContact overwrites the profile of contact id. Moving to an email
// held by another contact is a conflict.
func (s *Service) UpdateContact(
	ctx context.Context,
	id int64,
	req ContactModel,
) (_ *Contact, err error) {
	ctx, span := core.StartSpan(ctx, "contact.update",
		attribute.Int64("contact.id", id))
	defer func() {
		core.SetSpanError(span, err)
		span.End()
	}()

	contact, err := s.fromModel(req)
	if err != nil {
		return nil, err
	}
	contact.ID = id

	holder, err := s.repo.GetByEmail(ctx, contact.Email)
	switch {
	case err == nil && holder.ID != id:
		// A missing id is reported as not found before any email conflict.
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("update contact: %w", core.ErrDuplicateKey)
	case err != nil && !errors.Is(err, core.ErrNotFound):
		return nil, err
	}

	if err := s.repo.Update(ctx, contact); err != nil {
		return nil, err
	}

	return contact, nil
}

func (s *Service) ChangeRole(
	ctx context.Context,
	id int64,
	role string,
) (_ *Contact, err error) {
	ctx, span := core.StartSpan(ctx, "contact.change_role",
		attribute.Int64("contact.id", id),
		attribute.String("contact.role", role))
	defer func() {
		core.SetSpanError(span, err)
		span.End()
	}()

	if !IsValidRole(role) {
		return nil, core.ValidationError(core.FieldError{
			Field:   "roles",
			Message: "must be one of: " + strings.Join(Roles, " "),
		})
	}

	return s.repo.UpdateRole(ctx, id, role)
}

// SetRoleByEmail is the operator path used by cmd/setrole.
func (s *Service) SetRoleByEmail(
	ctx context.Context,
	email, role string,
) (*Contact, error) {
	contact, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	return s.ChangeRole(ctx, contact.ID, role)
}

func (s *Service) DeleteContact(ctx context.Context, id int64) error {
	ctx, span := core.StartSpan(ctx, "contact.delete",
		attribute.Int64("contact.id", id))
	defer span.End()

	err := s.repo.Delete(ctx, id)
	core.SetSpanError(span, err)
	return err
}

func (s *Service) SearchFirstName(
	ctx context.Context,
	inquiry string,
) ([]Contact, error) {
	return s.search(ctx, "first_name", inquiry, s.repo.SearchFirstName)
}

func (s *Service) SearchLastName(
	ctx context.Context,
	inquiry string,
) ([]Contact, error) {
	return s.search(ctx, "last_name", inquiry, s.repo.SearchLastName)
}

// search reports ErrNotFound only when no row matched.
func (s *Service) search(
	ctx context.Context,
	field, inquiry string,
	find func(context.Context, string) ([]Contact, error),
) ([]Contact, error) {
	ctx, span := core.StartSpan(ctx, "contact.search_"+field)
	defer span.End()

	contacts, err := find(ctx, inquiry)
	if err != nil {
		core.SetSpanError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("contact.matches", len(contacts)))
	if len(contacts) == 0 {
		return nil, fmt.Errorf("search %s: %w", field, core.ErrNotFound)
	}

	return contacts, nil
}

func (s *Service) SearchEmail(
	ctx context.Context,
	inquiry string,
) (*Contact, error) {
	ctx, span := core.StartSpan(ctx, "contact.search_email")
	defer span.End()

	contact, err := s.repo.GetByEmail(ctx, normalizeEmail(inquiry))
	core.SetSpanError(span, err)
	return contact, err
}

func (s *Service) CountByRole(ctx context.Context) (map[string]int64, error) {
	return s.repo.CountByRole(ctx)
}

func (s *Service) GetByID(
	ctx context.Context,
	id int64,
) (*auth.ContactInfo, error) {
	contact, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toContactInfo(contact), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.ContactInfo, error) {
	contact, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	return toContactInfo(contact), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	id int64,
	passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, id, passwordHash)
}

func (s *Service) fromModel(req ContactModel) (*Contact, error) {
	birthday, err := time.Parse(birthdayLayout, req.Birthday)
	if err != nil {
		return nil, core.ValidationError(core.FieldError{
			Field:   "birthday",
			Message: "must be a date in the format " + birthdayLayout,
		})
	}

	hash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return &Contact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     normalizeEmail(req.Email),
		Password:  hash,
		Phone:     req.Phone,
		Birthday:  birthday,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toContactInfo(c *Contact) *auth.ContactInfo {
	return &auth.ContactInfo{
		ID:           c.ID,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		PasswordHash: c.Password,
		Role:         c.RoleName(),
		CreatedAt:    c.CreatedAt,
	}
}

var _ auth.ContactProvider = (*Service)(nil)
