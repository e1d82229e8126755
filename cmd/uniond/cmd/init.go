package cmd

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/uniongov/union-core/app"
	"github.com/uniongov/union-core/config"
	union "github.com/uniongov/union-core/types"
)

// RW grants -rw------- file permissions
const RW = 0600

// RWX grants -rwx------ file permissions
const RWX = 0700

// FlagOverwrite allows init to replace existing files
const FlagOverwrite = "overwrite"

// InitCmd returns the command that writes the config, signer key and default genesis of a new union
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [union-id]",
		Short: "Initialize the home directory of a union",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serverCtx := GetServerContext(cmd)

			overwrite, err := cmd.Flags().GetBool(FlagOverwrite)
			if err != nil {
				return err
			}

			conf := serverCtx.Config
			conf.UnionID = union.Principal(args[0])
			if err := conf.ValidateBasic(); err != nil {
				return err
			}

			configPath := config.FilePath(serverCtx.Home)
			if _, err := os.Stat(configPath); err == nil && !overwrite {
				return errors.Errorf("%s exists already, use --%s to replace it", configPath, FlagOverwrite)
			}

			if err := os.MkdirAll(filepath.Dir(configPath), RWX); err != nil {
				return err
			}

			if err := config.WriteConfig(configPath, conf); err != nil {
				return err
			}

			key, err := btcec.NewPrivateKey()
			if err != nil {
				return err
			}

			if err := writeSignerKey(config.Path(serverCtx.Home, conf.SignerKeyFile), key); err != nil {
				return err
			}

			if err := writeGenesis(config.Path(serverCtx.Home, conf.GenesisFile), app.DefaultGenesisState(conf.UnionID)); err != nil {
				return err
			}

			serverCtx.Logger.Info("initialized union", "union", conf.UnionID, "home", serverCtx.Home)

			return nil
		},
	}

	cmd.Flags().Bool(FlagOverwrite, false, "overwrite existing config, signer key and genesis files")

	return cmd
}

type signerKeyFile struct {
	PrivateKey string `json:"private_key"`
}

func writeSignerKey(path string, key *btcec.PrivateKey) error {
	bz, err := json.MarshalIndent(signerKeyFile{PrivateKey: hex.EncodeToString(key.Serialize())}, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), RWX); err != nil {
		return err
	}

	return os.WriteFile(path, bz, RW)
}

func readSignerKey(path string) (*btcec.PrivateKey, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read signer key")
	}

	var file signerKeyFile
	if err := json.Unmarshal(bz, &file); err != nil {
		return nil, errors.Wrap(err, "failed to decode signer key")
	}

	keyBz, err := hex.DecodeString(file.PrivateKey)
	if err != nil || len(keyBz) != btcec.PrivKeyBytesLen {
		return nil, errors.Errorf("signer key in %s is malformed", path)
	}

	key, _ := btcec.PrivKeyFromBytes(keyBz)
	return key, nil
}

func writeGenesis(path string, genesis app.GenesisState) error {
	bz, err := json.MarshalIndent(genesis, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), RWX); err != nil {
		return err
	}

	return os.WriteFile(path, bz, 0644)
}

func readGenesis(path string) (app.GenesisState, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return app.GenesisState{}, errors.Wrap(err, "failed to read genesis")
	}

	var genesis app.GenesisState
	if err := json.Unmarshal(bz, &genesis); err != nil {
		return app.GenesisState{}, errors.Wrap(err, "failed to decode genesis")
	}

	return genesis, nil
}
