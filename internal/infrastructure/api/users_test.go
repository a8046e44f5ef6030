package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shop/storefront/internal/domain/identity"
)

func TestUpdateMyPassword_ReissuesToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/users/updateMyPassword", r.URL.Path)

		var in UpdatePasswordInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "old-secret", in.CurrentPassword)

		w.Write([]byte(`{
			"token": "tok2",
			"data": {"_id": "u1", "name": "Dana", "email": "dana@example.com", "role": "user"}
		}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server)

	session, err := client.UpdateMyPassword(context.Background(), UpdatePasswordInput{
		CurrentPassword: "old-secret",
		Password:        "new-secret",
		ConfirmPassword: "new-secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok2", session.Token)
	assert.Equal(t, "u1", session.User.ID)
}

func TestUpdateMyPassword_RejectsMismatchedConfirmation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("mismatched confirmation must not reach the backend")
	}))
	defer server.Close()

	client, _ := newTestClient(t, server)

	_, err := client.UpdateMyPassword(context.Background(), UpdatePasswordInput{
		CurrentPassword: "old-secret",
		Password:        "new-secret",
		ConfirmPassword: "different",
	})
	assert.Error(t, err)
}

func TestListUsers_DecodesAccounts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users", r.URL.Path)
		w.Write([]byte(`{
			"results": 2,
			"paginationResult": {"currentPage": 1, "limit": 40, "numberOfPages": 1},
			"data": [
				{"_id": "u1", "name": "Dana", "email": "dana@example.com", "role": "admin", "active": true},
				{"_id": "u2", "name": "Sam", "email": "sam@example.com", "role": "user", "active": false}
			]
		}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server)

	page, err := client.ListUsers(context.Background(), ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	admin := page.Items[0]
	assert.Equal(t, identity.RoleAdmin, admin.Role)
	assert.True(t, admin.CanManage())
	require.NotNil(t, page.Items[1].Active)
	assert.False(t, *page.Items[1].Active)
}
