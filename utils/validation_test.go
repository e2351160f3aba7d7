package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupRequest struct {
	Name     string `json:"name" validate:"required,max=10"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=USER ADMIN"`
	Internal string `json:"-" validate:"max=3"`
	Untagged int    `validate:"gte=0"`
}

func validSignup() signupRequest {
	return signupRequest{Name: "Ada", Email: "ada@example.com", Password: "correct-horse"}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*signupRequest)
		want   map[string]string
	}{
		{"valid", func(*signupRequest) {}, nil},
		{"missing name", func(s *signupRequest) { s.Name = "" }, map[string]string{"name": "name is required"}},
		{"bad email", func(s *signupRequest) { s.Email = "nope" }, map[string]string{"email": "email must be a valid email"}},
		{"short password", func(s *signupRequest) { s.Password = "short" },
			map[string]string{"password": "password must be at least 8 characters"}},
		{"long name", func(s *signupRequest) { s.Name = "Ada Lovelace" },
			map[string]string{"name": "name must be at most 10 characters"}},
		{"unknown role", func(s *signupRequest) { s.Role = "ROOT" },
			map[string]string{"role": "role must be one of: USER ADMIN"}},
		{"untagged field keeps its Go name", func(s *signupRequest) { s.Untagged = -1 },
			map[string]string{"Untagged": "Untagged must be at least 0"}},
		{"several fields", func(s *signupRequest) { *s = signupRequest{} }, map[string]string{
			"name":     "name is required",
			"email":    "email is required",
			"password": "password is required",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSignup()
			tt.mutate(&s)

			err := ValidateStruct(&s)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			require.True(t, IsValidationError(err))
			assert.Equal(t, "Validation failed", err.Error())
			assert.Equal(t, tt.want, GetValidationFields(err))
		})
	}
}

func TestValidateStruct_FieldHiddenFromJSON(t *testing.T) {
	s := validSignup()
	s.Internal = "too long"

	err := ValidateStruct(&s)
	require.True(t, IsValidationError(err))
	assert.Equal(t, map[string]string{"Internal": "Internal must be at most 3 characters"}, GetValidationFields(err))
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		invalid    bool
		validation string
	}{
		{name: "valid", body: `{"name":"Ada","email":"ada@example.com","password":"correct-horse","extra":1}`},
		{name: "trailing whitespace", body: "{\"name\":\"Ada\",\"email\":\"ada@example.com\",\"password\":\"correct-horse\"}\n"},
		{name: "malformed", body: `{"name":`, invalid: true},
		{name: "empty", body: ``, invalid: true},
		{name: "wrong type", body: `{"name":42}`, invalid: true},
		{name: "two values", body: `{"name":"a"} {"name":"b"}`, invalid: true},
		{name: "fails rules", body: `{"name":"Ada","email":"nope","password":"correct-horse"}`, validation: "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var s signupRequest
			err := DecodeJSON(req, &s)

			switch {
			case tt.invalid:
				assert.ErrorIs(t, err, ErrInvalidBody)
				assert.False(t, IsValidationError(err))
			case tt.validation != "":
				assert.Contains(t, GetValidationFields(err), tt.validation)
			default:
				require.NoError(t, err)
				assert.Equal(t, "Ada", s.Name)
			}
		})
	}
}

func TestDecodeJSON_BodyLimit(t *testing.T) {
	huge := `{"name":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(huge))

	var s signupRequest
	assert.ErrorIs(t, DecodeJSON(req, &s), ErrInvalidBody)
}

func TestValidationHelpersOnOtherErrors(t *testing.T) {
	err := errors.New("plain")
	assert.False(t, IsValidationError(err))
	assert.Nil(t, GetValidationFields(err))
	assert.Nil(t, GetValidationFields(nil))
}

func TestParseID(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{"9223372036854775807", 9223372036854775807, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
		{"9223372036854775808", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id, err := ParseID(tt.input, "projectId")
			if tt.wantErr {
				assert.ErrorContains(t, err, "invalid projectId")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}
