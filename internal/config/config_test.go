package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	write := func(content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))
	}

	t.Run("缺省值回填", func(t *testing.T) {
		write("server:\n  port: \"9090\"\nai:\n  api_key: test-key\n")

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, "test-key", cfg.AI.APIKey)
		assert.Equal(t, 15, cfg.AI.TimeoutSeconds)
		assert.Equal(t, 30, cfg.Cache.TTLMinutes)
		assert.Equal(t, 10, cfg.Cache.SweepMinutes)
		assert.Equal(t, 6, cfg.Quiz.QuestionCount)
	})

	t.Run("显式配置覆盖缺省值", func(t *testing.T) {
		write("ai:\n  api_key: test-key\n  timeout_seconds: 5\nquiz:\n  question_count: 10\n")

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.AI.TimeoutSeconds)
		assert.Equal(t, 10, cfg.Quiz.QuestionCount)
	})

	t.Run("缺少 API Key 启动失败", func(t *testing.T) {
		write("server:\n  port: \"9090\"\n")

		_, err := LoadConfig(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "api_key")
	})
}
