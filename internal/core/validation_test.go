// AngelaMos | 2026
// validation_test.go

package core

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Phone    int64  `json:"phone"    validate:"gt=100,lte=999999999"`
	Birthday string `json:"birthday" validate:"required,datetime=2006-01-02"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin moderator user"`
}

func newRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func requireAppError(t *testing.T, err error) *AppError {
	t.Helper()

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	return appErr
}

func TestDecodeAndValidateAcceptsValidBody(t *testing.T) {
	var dst sampleRequest
	err := DecodeAndValidate(
		newRequest(`{"email":"a@b.io","phone":12345,"birthday":"1990-05-01"}`),
		NewValidator(),
		&dst,
	)

	require.NoError(t, err)
	assert.Equal(t, "a@b.io", dst.Email)
	assert.Equal(t, int64(12345), dst.Phone)
}

func TestDecodeAndValidateReportsJSONFieldNames(t *testing.T) {
	var dst sampleRequest
	err := DecodeAndValidate(
		newRequest(`{"email":"nope","phone":5,"birthday":"01.05.1990","role":"root"}`),
		NewValidator(),
		&dst,
	)

	appErr := requireAppError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

	messages := map[string]string{}
	for _, f := range appErr.Fields {
		messages[f.Field] = f.Message
	}

	assert.Equal(t, "value is not a valid email address", messages["email"])
	assert.Equal(t, "must be greater than 100", messages["phone"])
	assert.Equal(t, "must be a date in the format 2006-01-02", messages["birthday"])
	assert.Equal(t, "must be one of: admin moderator user", messages["role"])
}

func TestDecodeAndValidateBodyErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "empty", body: "", want: "request body is empty"},
		{name: "malformed", body: "{", want: "malformed JSON"},
		{name: "wrong type", body: `{"phone":"abc"}`, want: "invalid type for field phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst sampleRequest
			err := DecodeAndValidate(newRequest(tt.body), NewValidator(), &dst)

			appErr := requireAppError(t, err)
			require.Len(t, appErr.Fields, 1)
			assert.Equal(t, "body", appErr.Fields[0].Field)
			assert.Contains(t, appErr.Fields[0].Message, tt.want)
		})
	}
}

func TestPositiveIDParam(t *testing.T) {
	id, err := PositiveIDParam("42", "contact_id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"0", "-3", "abc", ""} {
		_, err := PositiveIDParam(raw, "contact_id")
		appErr := requireAppError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, appErr.StatusCode, raw)
		assert.Equal(t, "contact_id", appErr.Fields[0].Field, raw)
	}
}
