package server

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/packagewjx/energy-anomaly/internal/classify"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestServerConfigComplete(t *testing.T) {
	config := ServerConfig{
		Port: DefaultPort,
	}
	assert.NoError(t, config.Complete())
	assert.Equal(t, DefaultShutdownTimeout, config.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, config.CorsOrigins)
	assert.Equal(t, DefaultMysqlUser, config.Mysql.User)
	assert.Equal(t, DefaultMysqlDatabase, config.Mysql.Database)
	assert.False(t, config.Mysql.AutoMigrate)

	configCopy := ServerConfig{Port: 80}
	assert.Error(t, configCopy.Complete())

	configCopy = ServerConfig{Port: 0}
	assert.Error(t, configCopy.Complete())

	configCopy = ServerConfig{
		Port:            DefaultPort,
		ShutdownTimeout: time.Minute,
		CorsOrigins:     []string{"http://localhost:3000"},
	}
	assert.NoError(t, configCopy.Complete())
	assert.Equal(t, time.Minute, configCopy.ShutdownTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, configCopy.CorsOrigins)
}

func TestServerConfigMysqlHostFromEnv(t *testing.T) {
	t.Setenv("MYSQL_SERVICE_HOST", "10.0.0.1")
	t.Setenv("MYSQL_SERVICE_PORT", "3306")

	config := ServerConfig{Port: DefaultPort}
	assert.NoError(t, config.Complete())
	assert.Equal(t, "10.0.0.1:3306", config.Mysql.Host)

	config = ServerConfig{Port: DefaultPort, Mysql: MysqlConfig{Host: "db:3306"}}
	assert.NoError(t, config.Complete())
	assert.Equal(t, "db:3306", config.Mysql.Host)
}

func TestServerConfigStringHidesPassword(t *testing.T) {
	config := ServerConfig{Port: DefaultPort, Mysql: MysqlConfig{Password: "secret"}}
	assert.False(t, strings.Contains(config.String(), "secret"))
	assert.Equal(t, "secret", config.Mysql.Password)
}

func TestNewServer(t *testing.T) {
	os.Unsetenv("MYSQL_SERVICE_HOST")
	model, err := classify.LoadFrom(classify.Linear, strings.NewReader(testModel))
	assert.NoError(t, err)

	s, err := NewServer(&ServerConfig{Port: DefaultPort}, model, zap.NewNop())
	assert.NoError(t, err)
	assert.NotNil(t, s)

	_, err = NewServer(&ServerConfig{Port: DefaultPort}, nil, zap.NewNop())
	assert.Error(t, err)

	_, err = NewServer(&ServerConfig{Port: 10}, model, zap.NewNop())
	assert.Error(t, err)
}
