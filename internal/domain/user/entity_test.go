//go:build unit

package user_test

import (
	"strings"
	"testing"

	"marketplace-api/internal/domain/user"
	"marketplace-api/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpOpts = []cmp.Option{
	cmpopts.IgnoreUnexported(user.User{}),
	cmpopts.EquateEmpty(),
}

type testCase struct {
	name   string
	mutate func(*builder.UserBuilder)
	errIs  error
}

func TestUser(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		username, _ := user.NewUsername("testuser")
		email, _ := user.NewEmail("test@example.com")
		role, _ := user.NewRole("customer")
		expected := user.NewUser(username, email, actual.PasswordHash(), role)

		if diff := cmp.Diff(expected, actual, cmpOpts...); diff != "" {
			t.Errorf("User mismatch (-want +got):\n%s", diff)
		}

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "testuser", actual.Username().Value())
		assert.Equal(t, "test@example.com", actual.Email().Value())
		assert.Equal(t, user.RoleCustomer, actual.Role())
		assert.True(t, actual.IsActive())
		assert.Nil(t, actual.LastLogin())
	})

	t.Run("email validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "missing at sign",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("invalid.example.com") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "missing domain",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("user@") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "valid email with subdomain",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("user@mail.example.co") },
			},
			{
				name:   "email with surrounding whitespace",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("  user@example.com  ") },
			},
		})
	})

	t.Run("username validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "too short",
				mutate: func(b *builder.UserBuilder) { b.WithUsername("ab") },
				errIs:  user.ErrInvalidUsername,
			},
			{
				name:   "minimum length",
				mutate: func(b *builder.UserBuilder) { b.WithUsername("abc") },
			},
			{
				name:   "maximum length",
				mutate: func(b *builder.UserBuilder) { b.WithUsername(strings.Repeat("a", 150)) },
			},
			{
				name:   "exceeds maximum length",
				mutate: func(b *builder.UserBuilder) { b.WithUsername(strings.Repeat("a", 151)) },
				errIs:  user.ErrInvalidUsername,
			},
		})
	})

	t.Run("role validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "customer role",
				mutate: func(b *builder.UserBuilder) { b.WithRole("customer") },
			},
			{
				name:   "business role",
				mutate: func(b *builder.UserBuilder) { b.WithRole("business") },
			},
			{
				name:   "admin role",
				mutate: func(b *builder.UserBuilder) { b.WithRole("admin") },
			},
			{
				name:   "unknown role",
				mutate: func(b *builder.UserBuilder) { b.WithRole("superuser") },
				errIs:  user.ErrInvalidRole,
			},
		})
	})
}

func TestRoleIsRegisterable(t *testing.T) {
	assert.True(t, user.RoleCustomer.IsRegisterable())
	assert.True(t, user.RoleBusiness.IsRegisterable())
	assert.False(t, user.RoleAdmin.IsRegisterable())
}

func TestNewPassword(t *testing.T) {
	_, err := user.NewPassword("short")
	require.ErrorIs(t, err, user.ErrPasswordTooWeak)

	p, err := user.NewPassword("password123")
	require.NoError(t, err)
	assert.Equal(t, "password123", p.Value())
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewUserBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
