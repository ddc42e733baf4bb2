package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserJSONHidesPassword(t *testing.T) {
	raw, err := json.Marshal(User{Id: "u1", Email: "ana@example.com", Password: "$2a$10$hash"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"u1","email":"ana@example.com"}`, string(raw))
}
