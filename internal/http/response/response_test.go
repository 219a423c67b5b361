package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Status   string `validate:"omitempty,oneof=pending approved"`
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name string
		req  loginRequest
		want string
	}{
		{
			name: "missing fields",
			req:  loginRequest{},
			want: "field Email is a required field, field Password is a required field",
		},
		{
			name: "bad email and short password",
			req:  loginRequest{Email: "nope", Password: "123"},
			want: "field Email must be a valid email, field Password must be at least 6 characters long",
		},
		{
			name: "unknown status",
			req:  loginRequest{Email: "a@b.tg", Password: "123456", Status: "bogus"},
			want: "field Status must be one of [pending approved]",
		},
	}

	v := validator.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			require.Error(t, err)

			got := ValidationError(err.(validator.ValidationErrors))

			assert.Equal(t, StatusError, got.Status)
			assert.Equal(t, tt.want, got.Error)
		})
	}
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, Response{Status: "OK", Data: 1}, StatusOKWithData(1))
	assert.Equal(t, ErrorResponse{Status: "Error", Error: "boom"}, Error("boom"))
	assert.Equal(t, Response{Status: "Error", Error: "boom", Data: "x"}, ErrorWithData("boom", "x"))
}
