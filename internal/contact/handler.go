// AngelaMos | 2026
// handler.go

package contact

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/contacts-api/internal/core"
	"github.com/carterperez-dev/contacts-api/internal/middleware"
)

const (
	notFoundDetail  = "Not found"
	duplicateDetail = "Such mail already registered"
)

// One checker per operation family.
var (
	allowedGetContacts       = middleware.RequireRole(RoleAdmin, RoleModerator, RoleUser)
	allowedCreateContact     = middleware.RequireRole(RoleAdmin, RoleModerator, RoleUser)
	allowedGetContactByID    = middleware.RequireRole(RoleAdmin, RoleModerator, RoleUser)
	allowedUpdateContact     = middleware.RequireRole(RoleAdmin, RoleModerator)
	allowedChangeContactRole = middleware.RequireRole(RoleAdmin, RoleModerator)
	allowedDeleteContact     = middleware.RequireRole(RoleAdmin)
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/contacts", func(r chi.Router) {
		r.Use(authenticator)

		r.With(allowedGetContacts).Get("/", h.ListContacts)
		r.With(allowedCreateContact).Post("/create", h.CreateContact)
		r.With(allowedGetContactByID).Get("/{contact_id}", h.GetContact)
		r.With(allowedUpdateContact).Put("/update/{contact_id}", h.UpdateContact)
		r.With(allowedChangeContactRole).
			Patch("/change_role/{contact_id}", h.ChangeRole)
		r.With(allowedDeleteContact).Delete("/delete/{contact_id}", h.DeleteContact)

		r.Get("/search_first_name/{inquiry}", h.SearchFirstName)
		r.Get("/search_last_name/{inquiry}", h.SearchLastName)
		r.Get("/search_mail/{inquiry}", h.SearchEmail)
	})
}

func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req ContactModel
	if err := core.DecodeAndValidate(r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	contact, err := h.service.CreateContact(r.Context(), req)
	if err != nil {
		handleError(w, err)
		return
	}

	core.Created(w, ResponseContact{
		Contact: ToContactDb(contact),
		Detail:  createdDetail,
	})
}

func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.service.ListContacts(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	core.OK(w, ToContactDbList(contacts))
}

func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	id, err := contactIDParam(r)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	contact, err := h.service.GetContact(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	core.OK(w, ToContactDb(contact))
}

func (h *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	id, err := contactIDParam(r)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	var req ContactModel
	if err := core.DecodeAndValidate(r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	contact, err := h.service.UpdateContact(r.Context(), id, req)
	if err != nil {
		handleError(w, err)
		return
	}

	core.OK(w, ToContactDb(contact))
}

func (h *Handler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	id, err := contactIDParam(r)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	var req UpdateContactRoleModel
	if err := core.DecodeAndValidate(r, h.validator, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	contact, err := h.service.ChangeRole(r.Context(), id, req.Roles)
	if err != nil {
		handleError(w, err)
		return
	}

	core.OK(w, ToContactDb(contact))
}

func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := contactIDParam(r)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	if err := h.service.DeleteContact(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) SearchFirstName(w http.ResponseWriter, r *http.Request) {
	inquiry, err := inquiryParam(r)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	contacts, err := h.service.SearchFirstName(r.Context(), inquiry)
	if err != nil {
		handleError(w, err)
		return
	}

	core.OK(w, ToContactDbList(contacts))
}

func (h *Handler) SearchLastName(w http.ResponseWriter, r *http.Request) {
	inquiry, err := inquiryParam(r)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	contacts, err := h.service.SearchLastName(r.Context(), inquiry)
	if err != nil {
		handleError(w, err)
		return
	}

	core.OK(w, ToContactDbList(contacts))
}

func (h *Handler) SearchEmail(w http.ResponseWriter, r *http.Request) {
	inquiry, err := inquiryParam(r)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	contact, err := h.service.SearchEmail(r.Context(), inquiry)
	if err != nil {
		handleError(w, err)
		return
	}

	core.OK(w, ToContactDb(contact))
}

func contactIDParam(r *http.Request) (int64, error) {
	return core.PositiveIDParam(chi.URLParam(r, "contact_id"), "contact_id")
}

func inquiryParam(r *http.Request) (string, error) {
	inquiry := strings.TrimSpace(chi.URLParam(r, "inquiry"))
	if inquiry == "" {
		return "", core.ValidationError(core.FieldError{
			Field:   "inquiry",
			Message: "must be at least 1 characters",
		})
	}
	return inquiry, nil
}

func handleError(w http.ResponseWriter, err error) {
	switch {
	case core.IsAppError(err):
		core.JSONError(w, err)
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, notFoundDetail)
	case errors.Is(err, core.ErrDuplicateKey):
		core.Conflict(w, duplicateDetail)
	default:
		core.InternalServerError(w, err)
	}
}
