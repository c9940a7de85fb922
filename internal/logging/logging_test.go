package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitializeFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gym-cost.log")
	t.Cleanup(InitializeDefault)

	require.NoError(t, Initialize(Config{Level: "debug", Format: "json", Output: path}))

	Named("pricing").Debug("quote computed", zap.String("plan", "Basic"))
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"quote computed"`)
	assert.Contains(t, string(data), `"plan":"Basic"`)
	assert.Contains(t, string(data), `"logger":"pricing"`)
}

func TestInitializeBadLevelFallsBackToWarn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gym-cost.log")
	t.Cleanup(InitializeDefault)

	require.NoError(t, Initialize(Config{Level: "loud", Format: "json", Output: path}))

	Info("hidden")
	Warn("shown")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}
