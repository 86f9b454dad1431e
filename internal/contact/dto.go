// AngelaMos | 2026
// dto.go

package contact

import (
	"time"
)

// ContactModel is the create and update payload.
type ContactModel struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=25"`
	LastName  string `json:"last_name"  validate:"required,min=1,max=40"`
	Email     string `json:"email"      validate:"required,email,max=255"`
	Password  string `json:"password"   validate:"required,min=6,max=10"`
	Phone     int64  `json:"phone"      validate:"gt=100,lte=999999999"`
	Birthday  string `json:"birthday"   validate:"required,datetime=2006-01-02"`
}

type UpdateContactRoleModel struct {
	Roles string `json:"roles" validate:"required,oneof=admin moderator user"`
}

// ContactDb is the public projection of a contact. Password and role
// never leave the service through it.
type ContactDb struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type ResponseContact struct {
	Contact ContactDb `json:"contact"`
	Detail  string    `json:"detail"`
}

const createdDetail = "Contact was created"

func ToContactDb(c *Contact) ContactDb {
	return ContactDb{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}

func ToContactDbList(contacts []Contact) []ContactDb {
	out := make([]ContactDb, 0, len(contacts))
	for i := range contacts {
		out = append(out, ToContactDb(&contacts[i]))
	}
	return out
}
