package utils

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	defer viper.Reset()

	dir, err := ioutil.TempDir("", "tresidus-config")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, ioutil.WriteFile(file, []byte(`
server:
  port: 8080
store:
  backend: mongo
`), 0600))

	os.Setenv("TRESIDUS_NOTIFICATION_MODE", "queue")
	defer os.Unsetenv("TRESIDUS_NOTIFICATION_MODE")

	LoadConfig(file)

	assert.Equal(t, "8080", viper.GetString("server.port"))
	assert.Equal(t, "mongo", viper.GetString("store.backend"))
	assert.Equal(t, "queue", viper.GetString("notification.mode"))
	assert.Equal(t, "data/consulting-requests.json", viper.GetString("store.file.path"))
	assert.Equal(t, "support@tresidus.com", viper.GetString("notification.recipient"))
}
