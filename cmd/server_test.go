package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerFlagsMigrateOffByDefault(t *testing.T) {
	flag := serverCmd.Flags().Lookup(FlagMysqlMigrate)
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}
