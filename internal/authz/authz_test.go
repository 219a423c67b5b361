package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/deuxal/insurance-portal/internal/models"
)

type RolesMock struct{ mock.Mock }

func (m *RolesMock) HasRole(ctx context.Context, userID string, role models.Role) (bool, error) {
	args := m.Called(ctx, userID, role)
	return args.Bool(0), args.Error(1)
}

func TestCheckRole(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		setup   func(m *RolesMock)
		want    bool
		wantErr bool
	}{
		{
			name:   "admin",
			userID: "u1",
			setup:  func(m *RolesMock) { m.On("HasRole", mock.Anything, "u1", models.RoleAdmin).Return(true, nil).Once() },
			want:   true,
		},
		{
			name:   "not admin",
			userID: "u2",
			setup:  func(m *RolesMock) { m.On("HasRole", mock.Anything, "u2", models.RoleAdmin).Return(false, nil).Once() },
		},
		{
			name:    "storage error denies",
			userID:  "u3",
			setup:   func(m *RolesMock) { m.On("HasRole", mock.Anything, "u3", models.RoleAdmin).Return(true, errors.New("db down")).Once() },
			wantErr: true,
		},
		{
			name:   "anonymous denied without lookup",
			userID: "",
			setup:  func(_ *RolesMock) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &RolesMock{}
			tt.setup(m)
			c := NewChecker(m)

			got, err := c.CheckRole(context.Background(), tt.userID, models.RoleAdmin)

			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			m.AssertExpectations(t)
		})
	}
}
