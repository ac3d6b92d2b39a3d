package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/skillswap-api/internal/config"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadPointsDefaults(t *testing.T) {
	conf, err := config.Load(writeConfigFile(t, "api:\n  port: \"8080\"\n"))
	require.NoError(t, err)

	require.NotNil(t, conf.Points)
	assert.Equal(t, 8, conf.Points.PlatformFeePercentage)
	assert.Equal(t, 100, conf.Points.SignupBonus)
}

func TestLoadExplicitZeroPointsConfig(t *testing.T) {
	conf, err := config.Load(writeConfigFile(t,
		"points:\n  platform_fee_percentage: 0\n  signup_bonus: 0\n"))
	require.NoError(t, err)

	require.NotNil(t, conf.Points)
	assert.Equal(t, 0, conf.Points.PlatformFeePercentage)
	assert.Equal(t, 0, conf.Points.SignupBonus)
}
