// AngelaMos | 2026
// repository.go

package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/contacts-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, contact *Contact) error
	GetByID(ctx context.Context, id int64) (*Contact, error)
	GetByEmail(ctx context.Context, email string) (*Contact, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]Contact, error)
	Update(ctx context.Context, contact *Contact) error
	UpdateRole(ctx context.Context, id int64, role string) (*Contact, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
	SearchFirstName(ctx context.Context, inquiry string) ([]Contact, error)
	SearchLastName(ctx context.Context, inquiry string) ([]Contact, error)
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context) (map[string]int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// role is an enum column; it is read back as text so it scans into *string.
const contactColumns = `id, first_name, last_name, email, password, phone,
		birthday, created_at, role::text AS role`

func (r *repository) Create(ctx context.Context, contact *Contact) error {
	query := `
		INSERT INTO contacts
			(first_name, last_name, email, password, phone, birthday, role)
		VALUES ($1, $2, $3, $4, $5, $6, CAST($7 AS roles))
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		contact.FirstName,
		contact.LastName,
		contact.Email,
		contact.Password,
		contact.Phone,
		contact.Birthday,
		contact.Role,
	).Scan(&contact.ID, &contact.CreatedAt)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("create contact: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create contact: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`

	var contact Contact
	err := r.db.GetContext(ctx, &contact, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get contact: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}

	return &contact, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*Contact, error) {
	query := `SELECT ` + contactColumns + `
		FROM contacts
		WHERE lower(email) = lower($1)`

	var contact Contact
	err := r.db.GetContext(ctx, &contact, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get contact by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get contact by email: %w", err)
	}

	return &contact, nil
}

func (r *repository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM contacts WHERE lower(email) = lower($1))`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}

	return exists, nil
}

func (r *repository) List(ctx context.Context) ([]Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts ORDER BY id`

	contacts := []Contact{}
	if err := r.db.SelectContext(ctx, &contacts, query); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	return contacts, nil
}

// Update overwrites every profile column of the row. The role column is
// left untouched.
func (r *repository) Update(ctx context.Context, contact *Contact) error {
	query := `
		UPDATE contacts
		SET first_name = $2, last_name = $3, email = $4,
		    password = $5, phone = $6, birthday = $7
		WHERE id = $1
		RETURNING ` + contactColumns

	err := r.db.GetContext(ctx, contact, query,
		contact.ID,
		contact.FirstName,
		contact.LastName,
		contact.Email,
		contact.Password,
		contact.Phone,
		contact.Birthday,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update contact: %w", core.ErrNotFound)
	}
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("update contact: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update contact: %w", err)
	}

	return nil
}

func (r *repository) UpdateRole(
	ctx context.Context,
	id int64,
	role string,
) (*Contact, error) {
	query := `
		UPDATE contacts
		SET role = CAST($2 AS roles)
		WHERE id = $1
		RETURNING ` + contactColumns

	var contact Contact
	err := r.db.GetContext(ctx, &contact, query, id, role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update contact role: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update contact role: %w", err)
	}

	return &contact, nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id int64,
	passwordHash string,
) error {
	query := `UPDATE contacts SET password = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM contacts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete contact: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) SearchFirstName(
	ctx context.Context,
	inquiry string,
) ([]Contact, error) {
	return r.searchColumn(ctx, "first_name", inquiry)
}

func (r *repository) SearchLastName(
	ctx context.Context,
	inquiry string,
) ([]Contact, error) {
	return r.searchColumn(ctx, "last_name", inquiry)
}

// searchColumn matches a case-insensitive substring. column is always a
// compile-time constant from this file.
func (r *repository) searchColumn(
	ctx context.Context,
	column, inquiry string,
) ([]Contact, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM contacts
		WHERE %s ILIKE $1 ESCAPE '\'
		ORDER BY id`, contactColumns, column)

	contacts := []Contact{}
	pattern := "%" + escapeLike(inquiry) + "%"
	if err := r.db.SelectContext(ctx, &contacts, query, pattern); err != nil {
		return nil, fmt.Errorf("search %s: %w", column, err)
	}

	return contacts, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM contacts`); err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return total, nil
}

// CountByRole groups contacts by role. Contacts without a role are
// reported under "none".
func (r *repository) CountByRole(ctx context.Context) (map[string]int64, error) {
	query := `
		SELECT COALESCE(role::text, 'none') AS role, COUNT(*) AS total
		FROM contacts
		GROUP BY 1`

	var rows []struct {
		Role  string `db:"role"`
		Total int64  `db:"total"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count contacts by role: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Role] = row.Total
	}

	return counts, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
