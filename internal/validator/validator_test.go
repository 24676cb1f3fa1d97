package validator

import (
	"testing"

	"contacts_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_SignupRequest(t *testing.T) {
	t.Parallel()

	v := New()

	valid := dto.SignupRequest{Name: "Ann", Email: "ann@x.com", Password: "abcdef"}
	assert.NoError(t, v.Validate(valid))

	cases := []struct {
		name  string
		req   dto.SignupRequest
		field string
	}{
		{"missing name", dto.SignupRequest{Email: "ann@x.com", Password: "abcdef"}, "name"},
		{"missing email", dto.SignupRequest{Name: "Ann", Password: "abcdef"}, "email"},
		{"malformed email", dto.SignupRequest{Name: "Ann", Email: "not-an-email", Password: "abcdef"}, "email"},
		{"short password", dto.SignupRequest{Name: "Ann", Email: "ann@x.com", Password: "abc"}, "password"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(tc.req)
			require.Error(t, err)

			vErr, ok := err.(*ValidationError)
			require.True(t, ok)
			assert.Contains(t, vErr.Errors, tc.field)
		})
	}
}

func TestValidate_SubscriptionRule(t *testing.T) {
	t.Parallel()

	v := New()

	for _, tier := range []string{"starter", "pro", "business"} {
		assert.NoError(t, v.Validate(dto.SubscriptionRequest{Subscription: tier}), tier)
	}

	for _, tier := range []string{"premium", "Starter", "PRO", "free"} {
		err := v.Validate(dto.SubscriptionRequest{Subscription: tier})
		require.Error(t, err, tier)

		vErr, ok := err.(*ValidationError)
		require.True(t, ok)
		assert.Equal(t, "Must be one of: starter, pro, business", vErr.Errors["subscription"])
	}

	// Absent tier fails the required rule, not the enum rule.
	err := v.Validate(dto.SubscriptionRequest{})
	require.Error(t, err)
	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "This field is required", vErr.Errors["subscription"])
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	t.Parallel()

	v := New()

	err := v.Validate(dto.LoginRequest{Password: "abcdef"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	_, hasJSONName := vErr.Errors["email"]
	_, hasGoName := vErr.Errors["Email"]
	assert.True(t, hasJSONName)
	assert.False(t, hasGoName)
}
