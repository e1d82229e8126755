package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/axelarnetwork/utils/funcs"

	"github.com/uniongov/union-core/config"
	union "github.com/uniongov/union-core/types"
)

func writeHome(t *testing.T, conf config.Config) string {
	home := t.TempDir()
	funcs.MustNoErr(os.MkdirAll(filepath.Join(home, "config"), 0o755))
	funcs.MustNoErr(config.WriteConfig(config.FilePath(home), conf))

	return home
}

func TestReadConfig(t *testing.T) {
	t.Run("missing file yields the defaults", func(t *testing.T) {
		conf, err := config.ReadConfig(config.NewViper(t.TempDir()))
		assert.NoError(t, err)
		assert.Equal(t, config.DefaultConfig(), conf)
	})

	t.Run("written config is read back", func(t *testing.T) {
		expected := config.DefaultConfig()
		expected.UnionID = "union-a"
		expected.TickInterval = 5 * time.Second
		expected.Log.Level = zerolog.DebugLevel
		expected.Peers = []config.Peer{{ID: "union-b", Address: "http://10.0.0.2:26680"}}

		conf, err := config.ReadConfig(config.NewViper(writeHome(t, expected)))
		assert.NoError(t, err)
		assert.Equal(t, expected, conf)
		assert.NoError(t, conf.ValidateBasic())
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		expected := config.DefaultConfig()
		expected.UnionID = "union-a"
		home := writeHome(t, expected)

		t.Setenv("UNION_API_LISTEN_ADDRESS", "0.0.0.0:9000")
		t.Setenv("UNION_LOG_LEVEL", "error")

		conf, err := config.ReadConfig(config.NewViper(home))
		assert.NoError(t, err)
		assert.Equal(t, "0.0.0.0:9000", conf.API.ListenAddress)
		assert.Equal(t, zerolog.ErrorLevel, conf.Log.Level)
		assert.Equal(t, union.Principal("union-a"), conf.UnionID)
	})

	t.Run("peers file is merged", func(t *testing.T) {
		conf := config.DefaultConfig()
		conf.UnionID = "union-a"
		conf.Peers = []config.Peer{{ID: "union-b", Address: "http://10.0.0.2:26680"}}
		home := writeHome(t, conf)

		peers := "[[peer]]\nid = \"union-b\"\naddress = \"http://10.0.0.9:26680\"\n\n[[peer]]\nid = \"union-c\"\naddress = \"http://10.0.0.3:26680\"\n"
		funcs.MustNoErr(os.WriteFile(filepath.Join(home, "config", "peers.toml"), []byte(peers), 0o644))

		actual, err := config.ReadConfig(config.NewViper(home))
		assert.NoError(t, err)
		assert.Equal(t, []config.Peer{
			{ID: "union-b", Address: "http://10.0.0.2:26680"},
			{ID: "union-c", Address: "http://10.0.0.3:26680"},
		}, actual.Peers)
	})
}

func TestConfig_ValidateBasic(t *testing.T) {
	conf := config.DefaultConfig()
	assert.Error(t, conf.ValidateBasic())

	conf.UnionID = "union-a"
	assert.NoError(t, conf.ValidateBasic())

	conf.Peers = []config.Peer{{ID: "union-b", Address: "not a url"}}
	assert.Error(t, conf.ValidateBasic())
}
