package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubce/backoffice/auth"
)

func TestCan_ViewAccessMirrorsNavigation(t *testing.T) {
	// Every role sees the dashboard.
	for _, r := range []auth.Role{auth.RoleDirector, auth.RoleAssistantDirector, auth.RoleAdmin, auth.RoleCoordinator, auth.RoleEmployee} {
		assert.True(t, auth.Can(r, auth.ActionView, auth.ResourceDashboard), "role %s", r)
	}

	// Contractors are finance-office only.
	assert.True(t, auth.Can(auth.RoleAdmin, auth.ActionView, auth.ResourceContractors))
	assert.False(t, auth.Can(auth.RoleCoordinator, auth.ActionView, auth.ResourceContractors))
	assert.False(t, auth.Can(auth.RoleEmployee, auth.ActionView, auth.ResourceContractors))

	// Employee roster and hierarchy stay with directors.
	assert.True(t, auth.Can(auth.RoleAssistantDirector, auth.ActionView, auth.ResourceEmployees))
	assert.False(t, auth.Can(auth.RoleAdmin, auth.ActionView, auth.ResourceEmployees))
	assert.False(t, auth.Can(auth.RoleAdmin, auth.ActionView, auth.ResourceHierarchy))
}

func TestCan_EditRequiresWritingRole(t *testing.T) {
	assert.True(t, auth.Can(auth.RoleCoordinator, auth.ActionEdit, auth.ResourceWorks))
	assert.False(t, auth.Can(auth.RoleEmployee, auth.ActionEdit, auth.ResourceDashboard))
	assert.True(t, auth.Can(auth.RoleAdmin, auth.ActionEdit, auth.ResourcePayments))
}

func TestCan_DeleteAndManage(t *testing.T) {
	assert.True(t, auth.Can(auth.RoleDirector, auth.ActionDelete, auth.ResourceContractors))
	assert.True(t, auth.Can(auth.RoleAdmin, auth.ActionManage, auth.ResourceUsers))
	assert.False(t, auth.Can(auth.RoleCoordinator, auth.ActionDelete, auth.ResourceWorks))
	assert.False(t, auth.Can(auth.RoleEmployee, auth.ActionManage, auth.ResourceUsers))
}

func TestCan_UnknownRole(t *testing.T) {
	assert.False(t, auth.Can(auth.Role("Intern"), auth.ActionView, auth.ResourceDashboard))
}

func TestToken_RoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	u := auth.User{ID: "u-1", Email: "a@ub.example", Name: "A", Role: auth.RoleAdmin}

	raw, err := auth.IssueToken(secret, u, time.Hour)
	require.NoError(t, err)

	got, err := auth.ParseToken(secret, raw)
	require.NoError(t, err)
	assert.Equal(t, &u, got)
}

func TestToken_WrongSecret(t *testing.T) {
	raw, err := auth.IssueToken([]byte("one"), auth.User{ID: "u", Role: auth.RoleEmployee}, time.Hour)
	require.NoError(t, err)

	_, err = auth.ParseToken([]byte("two"), raw)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestToken_Expired(t *testing.T) {
	raw, err := auth.IssueToken([]byte("s"), auth.User{ID: "u", Role: auth.RoleEmployee}, -time.Minute)
	require.NoError(t, err)

	_, err = auth.ParseToken([]byte("s"), raw)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestToken_BadRoleRejected(t *testing.T) {
	raw, err := auth.IssueToken([]byte("s"), auth.User{ID: "u", Role: auth.Role("Superuser")}, time.Hour)
	require.NoError(t, err)

	_, err = auth.ParseToken([]byte("s"), raw)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
