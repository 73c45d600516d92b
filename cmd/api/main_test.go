package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeAPIRequiresSecrets(t *testing.T) {
	// A config without token secrets must refuse to start: the server
	// cannot authenticate anyone without them.
	path := filepath.Join(t.TempDir(), "app.yml")
	require.NoError(t, os.WriteFile(path, []byte("apiPort: 4000\n"), 0644))

	_, err := initializeAPI(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accessTokenSecret")
}

func TestInitializeAPI(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yml")
	cfg := `
apiPort: 4000
database:
  type: sqlite
  path: ` + filepath.Join(dir, "test.db") + `
auth:
  accessTokenSecret: access-secret
  refreshTokenSecret: refresh-secret
`
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))

	api, err := initializeAPI(path)
	require.NoError(t, err)
	assert.NotNil(t, api.Router)
}
