package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.yaml"), []byte(content), 0o644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad(t *testing.T) {
	writeConfig(t, `
server:
  port: 9090
jwt:
  secret: s3cret
database:
  host: db.internal
  password: pw
  loc: Asia/Shanghai
order:
  status_policy: strict
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, "strict", cfg.Order.StatusPolicy)
	assert.True(t, cfg.Order.RestockOnCancel, "未配置时使用默认值")
	assert.Equal(t, 10*time.Minute, cfg.Redis.OrderTTL)
	assert.Equal(t, "root:pw@tcp(db.internal:3306)/backoffice?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai", cfg.Database.DSN())
}

func TestLoadEnvOverride(t *testing.T) {
	writeConfig(t, `
jwt:
  secret: from-file
`)
	t.Setenv("BACKOFFICE_JWT_SECRET", "from-env")
	t.Setenv("BACKOFFICE_SERVER_PORT", "7070")
	t.Setenv("BACKOFFICE_MQ_ENABLED", "true")
	t.Setenv("BACKOFFICE_MQ_URL", "amqp://guest:guest@mq:5672/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.True(t, cfg.MQ.Enabled)
	assert.Equal(t, "amqp://guest:guest@mq:5672/", cfg.MQ.URL)
}

func TestLoadDotEnv(t *testing.T) {
	writeConfig(t, "server:\n  port: 8080\n")
	require.NoError(t, os.WriteFile(".env", []byte("BACKOFFICE_JWT_SECRET=dotenv-secret\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("BACKOFFICE_JWT_SECRET") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dotenv-secret", cfg.JWT.Secret)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: 8080},
			JWT:       JWTConfig{Secret: "x"},
			Order:     OrderConfig{StatusPolicy: "permissive"},
			Tracing:   TracingConfig{SampleRatio: 1},
			RateLimit: RateLimitConfig{Enabled: true, RPS: 1, Burst: 1},
		}
	}

	require.NoError(t, validate(valid()))

	cases := map[string]func(c *Config){
		"端口非法":    func(c *Config) { c.Server.Port = 0 },
		"缺少密钥":    func(c *Config) { c.JWT.Secret = "" },
		"未知状态策略":  func(c *Config) { c.Order.StatusPolicy = "loose" },
		"mq缺少url": func(c *Config) { c.MQ.Enabled = true },
		"采样比例越界":  func(c *Config) { c.Tracing.SampleRatio = 2 },
		"限流参数非法":  func(c *Config) { c.RateLimit.RPS = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(cfg)
			assert.Error(t, validate(cfg))
		})
	}
}
