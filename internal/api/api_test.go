package api

import (
	"net/http"
	"testing"

	"github.com/blogserver-io/blogserver/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApi(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		_, apiInstance := setupTestServer(t)
		assert.Equal(t, 8080, apiInstance.Config.APIPort)
		assert.NotNil(t, apiInstance.Router)
	})

	t.Run("InvalidConfigZeroPort", func(t *testing.T) {
		cfg := config.Config{APIPort: 0}
		_, err := NewApi(cfg, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Must have at least a port to start API")
	})
}

func TestNotFoundRoute(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, err := http.Get(server.URL + "/nonexistent")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	server, _ := setupTestServer(t)

	tests := []struct {
		method string
		path   string
	}{
		{"POST", "/posts"},
		{"DELETE", "/posts/1"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, server.URL+tt.path, nil)
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}
