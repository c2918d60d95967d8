package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/frontdesk/internal/domain"
	"github.com/pkordes/frontdesk/internal/handler"
)

func TestGetMe_200(t *testing.T) {
	access := &mockAccess{user: domain.User{
		ID:    "1",
		Name:  "Owner Person",
		Email: "owner@hotel.test",
		Role:  domain.RoleOwner,
		Permissions: domain.Permissions{
			domain.ModuleBookingManagement: {domain.ActionView: true},
		},
	}}

	rec := serve(newHTTPHandler(handler.Services{Access: access}), authed(httptest.NewRequest(http.MethodGet, "/me", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	var body handler.MeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Owner Person", body.Name)
	assert.Equal(t, "owner", body.Role)
	assert.True(t, body.IsOwner)
	assert.True(t, body.Permissions.Can(domain.ModuleBookingManagement, domain.ActionView))
	assert.False(t, body.Permissions.Can(domain.ModuleBookingManagement, domain.ActionDelete))
}

func TestGetMe_NilPermissionsAreAnObject(t *testing.T) {
	access := &mockAccess{user: domain.User{ID: "1", Name: "Unknown", Role: domain.RoleReceptionist}}

	rec := serve(newHTTPHandler(handler.Services{Access: access}), authed(httptest.NewRequest(http.MethodGet, "/me", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"permissions":{}`)
}

func TestGetMe_403WithoutSession(t *testing.T) {
	rec := serve(newHTTPHandler(handler.Services{}), httptest.NewRequest(http.MethodGet, "/me", nil))

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", decodeError(t, rec).Code)
}
