package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsers(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin", "pw123456", "admin")
	env.createUser(t, "zoe", "pw123456", "user")
	env.createUser(t, "casey", "pw123456", "user")
	router := env.routerAs(admin.ID, admin.Role)

	w := doJSON(t, router, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 3)

	// Sorted by username, password hashes never serialized.
	assert.Equal(t, "admin", users[0]["username"])
	assert.Equal(t, "casey", users[1]["username"])
	assert.Equal(t, "zoe", users[2]["username"])
	for _, u := range users {
		assert.Contains(t, u, "id")
		assert.Contains(t, u, "role")
		assert.NotContains(t, u, "password_hash")
		assert.NotContains(t, u, "PasswordHash")
	}
}
