package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/axelarnetwork/utils/funcs"

	"github.com/uniongov/union-core/app"
	"github.com/uniongov/union-core/config"
	union "github.com/uniongov/union-core/types"
)

func execute(args ...string) error {
	root := NewRootCmd()
	root.SetArgs(args)

	return root.ExecuteContext(context.Background())
}

func TestInitCmd(t *testing.T) {
	home := t.TempDir()

	assert.NoError(t, execute("init", "union-a", "--home", home))

	conf := funcs.Must(config.ReadConfig(config.NewViper(home)))
	assert.Equal(t, union.Principal("union-a"), conf.UnionID)

	_, err := readSignerKey(config.Path(home, conf.SignerKeyFile))
	assert.NoError(t, err)

	genesis := funcs.Must(readGenesis(config.Path(home, conf.GenesisFile)))
	assert.Len(t, genesis.Permissions, 1)
	assert.Len(t, genesis.AccessConfigs, 1)

	t.Run("existing homes are not overwritten by default", func(t *testing.T) {
		assert.Error(t, execute("init", "union-b", "--home", home))
		assert.NoError(t, execute("init", "union-b", "--home", home, "--"+FlagOverwrite))

		conf := funcs.Must(config.ReadConfig(config.NewViper(home)))
		assert.Equal(t, union.Principal("union-b"), conf.UnionID)
	})

	t.Run("invalid union ids are refused", func(t *testing.T) {
		assert.Error(t, execute("init", "union/a", "--home", t.TempDir()))
	})
}

func TestImportGenesisCmd(t *testing.T) {
	home := t.TempDir()
	assert.NoError(t, execute("init", "union-a", "--home", home))

	assert.NoError(t, execute("genesis", "import", "--home", home))
	assert.ErrorIs(t, execute("genesis", "import", "--home", home), app.ErrGenesis)
}

func TestImportGenesisCmd_NotInitialized(t *testing.T) {
	assert.Error(t, execute("genesis", "import", "--home", t.TempDir()))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, config.LogConfig{Level: zerolog.InfoLevel, Format: config.LogFormatJSON})

	logger.With("module", "x/voting").Info("round started", "voting", "common/1")
	logger.Debug("filtered")

	var line map[string]interface{}
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "round started", line["message"])
	assert.Equal(t, "x/voting", line["module"])
	assert.Equal(t, "common/1", line["voting"])
	assert.Equal(t, "info", line["level"])
}

func TestRootCmd_LogFlagsOverrideConfig(t *testing.T) {
	home := t.TempDir()
	root := NewRootCmd()
	root.SetArgs([]string{"init", "union-a", "--home", home, "--" + FlagLogLevel, "debug", "--" + FlagLogFormat, "json"})

	assert.NoError(t, root.ExecuteContext(context.Background()))

	var initCmd = root.Commands()[0]
	for _, c := range root.Commands() {
		if c.Name() == "init" {
			initCmd = c
		}
	}

	serverCtx := GetServerContext(initCmd)
	assert.Equal(t, zerolog.DebugLevel, serverCtx.Config.Log.Level)
	assert.Equal(t, config.LogFormatJSON, serverCtx.Config.Log.Format)
}
