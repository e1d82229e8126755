package cmd

import (
	dbm "github.com/cometbft/cometbft-db"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/uniongov/union-core/api"
	"github.com/uniongov/union-core/app"
	"github.com/uniongov/union-core/config"
	union "github.com/uniongov/union-core/types"
	"github.com/uniongov/union-core/utils"
)

// GenesisCmd returns the genesis subcommands
func GenesisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genesis",
		Short: "Genesis subcommands",
	}

	cmd.AddCommand(importGenesisCmd())

	return cmd
}

func importGenesisCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Import the genesis state into an empty database. Defaults to the configured genesis file.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			serverCtx := GetServerContext(cmd)

			path := config.Path(serverCtx.Home, serverCtx.Config.GenesisFile)
			if len(args) == 1 {
				path = args[0]
			}

			genesis, err := readGenesis(path)
			if err != nil {
				return err
			}

			a, closeDB, err := openApp(serverCtx)
			if err != nil {
				return err
			}
			defer func() { _ = closeDB() }()

			if err := a.InitGenesis(cmd.Context(), genesis); err != nil {
				return err
			}

			serverCtx.Logger.Info("imported genesis", "file", path)

			return nil
		},
	}
}

// openApp opens the database of the configured union
func openApp(serverCtx *ServerContext) (*app.App, func() error, error) {
	conf := serverCtx.Config
	if err := conf.ValidateBasic(); err != nil {
		return nil, nil, errors.Wrap(err, "invalid config")
	}

	signer, err := readSignerKey(config.Path(serverCtx.Home, conf.SignerKeyFile))
	if err != nil {
		return nil, nil, err
	}

	db, err := dbm.NewDB(AppName, dbm.BackendType(conf.DBBackend), config.Path(serverCtx.Home, conf.DBDir))
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open database")
	}

	addresses := make(map[union.Principal]string, len(conf.Peers))
	for _, peer := range conf.Peers {
		addresses[peer.ID] = peer.Address
	}
	peers := api.NewPeers(addresses, conf.API.RemoteTimeout, serverCtx.Logger)

	return app.NewApp(conf.UnionID, db, signer, peers, utils.SystemClock{}, serverCtx.Logger), db.Close, nil
}
