// AngelaMos | 2026
// fake_test.go

package contact

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/carterperez-dev/contacts-api/internal/core"
)

// memRepository mirrors the SQL repository closely enough for service
// and handler tests, including the unique email index.
type memRepository struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]Contact

	skipExistsCheck bool
}

func newMemRepository() *memRepository {
	return &memRepository{rows: map[int64]Contact{}}
}

func (m *memRepository) emailTaken(email string, except int64) bool {
	for id, c := range m.rows {
		if id != except && strings.EqualFold(c.Email, email) {
			return true
		}
	}
	return false
}

func (m *memRepository) sorted(keep func(Contact) bool) []Contact {
	out := []Contact{}
	for _, c := range m.rows {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memRepository) Create(_ context.Context, c *Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.emailTaken(c.Email, 0) {
		return fmt.Errorf("create contact: %w", core.ErrDuplicateKey)
	}

	m.nextID++
	c.ID = m.nextID
	c.CreatedAt = time.Now().UTC()
	m.rows[c.ID] = *c
	return nil
}

func (m *memRepository) GetByID(_ context.Context, id int64) (*Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.rows[id]
	if !ok {
		return nil, fmt.Errorf("get contact: %w", core.ErrNotFound)
	}
	return &c, nil
}

func (m *memRepository) GetByEmail(_ context.Context, email string) (*Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.rows {
		if strings.EqualFold(c.Email, email) {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("get contact by email: %w", core.ErrNotFound)
}

func (m *memRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.skipExistsCheck {
		return false, nil
	}
	return m.emailTaken(email, 0), nil
}

func (m *memRepository) List(_ context.Context) ([]Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.sorted(func(Contact) bool { return true }), nil
}

func (m *memRepository) Update(_ context.Context, c *Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.rows[c.ID]
	if !ok {
		return fmt.Errorf("update contact: %w", core.ErrNotFound)
	}
	if m.emailTaken(c.Email, c.ID) {
		return fmt.Errorf("update contact: %w", core.ErrDuplicateKey)
	}

	c.CreatedAt = existing.CreatedAt
	c.Role = existing.Role
	m.rows[c.ID] = *c
	return nil
}

func (m *memRepository) UpdateRole(_ context.Context, id int64, role string) (*Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.rows[id]
	if !ok {
		return nil, fmt.Errorf("update contact role: %w", core.ErrNotFound)
	}
	c.Role = &role
	m.rows[id] = c
	return &c, nil
}

func (m *memRepository) UpdatePassword(_ context.Context, id int64, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.rows[id]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	c.Password = hash
	m.rows[id] = c
	return nil
}

func (m *memRepository) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[id]; !ok {
		return fmt.Errorf("delete contact: %w", core.ErrNotFound)
	}
	delete(m.rows, id)
	return nil
}

func (m *memRepository) SearchFirstName(_ context.Context, q string) ([]Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	q = strings.ToLower(q)
	return m.sorted(func(c Contact) bool {
		return strings.Contains(strings.ToLower(c.FirstName), q)
	}), nil
}

func (m *memRepository) SearchLastName(_ context.Context, q string) ([]Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	q = strings.ToLower(q)
	return m.sorted(func(c Contact) bool {
		return strings.Contains(strings.ToLower(c.LastName), q)
	}), nil
}

func (m *memRepository) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return int64(len(m.rows)), nil
}

func (m *memRepository) CountByRole(_ context.Context) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := map[string]int64{}
	for _, c := range m.rows {
		role := c.RoleName()
		if role == "" {
			role = "none"
		}
		counts[role]++
	}
	return counts, nil
}

func (m *memRepository) setRole(id int64, role string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.rows[id]
	c.Role = &role
	m.rows[id] = c
}

var _ Repository = (*memRepository)(nil)
