package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocRegistered(t *testing.T) {
	doc, err := swag.ReadDoc()
	require.NoError(t, err)

	var parsed struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))
	assert.Equal(t, "DevEvents API", parsed.Info.Title)

	want := map[string][]string{
		"/api/dev-events":               {"get", "post"},
		"/api/dev-events/{id}":          {"get", "put", "delete"},
		"/api/dev-events/{id}/speakers": {"get", "post"},
		"/health":                       {"get"},
	}
	for path, methods := range want {
		ops, ok := parsed.Paths[path]
		require.True(t, ok, "missing path %s", path)
		for _, m := range methods {
			assert.Contains(t, ops, m, "%s %s", m, path)
		}
	}
}
