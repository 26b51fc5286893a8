package main

import (
	"context"
	"fmt"
	"io"

	"go-game-hub/config"
	"go-game-hub/constants"
	"go-game-hub/hubsrv"
	"go-game-hub/logging"
	"go-game-hub/utils/fileio"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cli holds the global flags and the pipeline shared by all commands.
type cli struct {
	out io.Writer

	configPath string
	catalog    string
	verbose    bool
	ephemeral  bool

	logger *zap.Logger
	hub    *hubsrv.Service
}

// execute runs args and releases the pipeline afterwards, including when
// the command fails.
func (c *cli) execute(args []string) error {
	defer c.close()
	root := c.rootCmd()
	root.SetArgs(args)
	return root.Execute()
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hubctl",
		Short:         "Manage the game hub collection",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.open()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default ~/.go-game-hub/config/config.json)")
	flags.StringVar(&c.catalog, "catalog", "", "catalog URL or file, overriding the config")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&c.ephemeral, "ephemeral", false, "keep custom games in memory only")

	root.AddCommand(
		c.listCmd(),
		c.addCmd(),
		c.deleteCmd(),
		c.exportCmd(),
		c.importCmd(),
	)
	return root
}

func (c *cli) open() error {
	logger, err := logging.New(c.verbose)
	if err != nil {
		return err
	}
	c.logger = logger

	cm := config.NewConfigManager()
	if c.configPath != "" {
		cm = config.NewConfigManagerAt(c.configPath)
	}
	if err := cm.Load(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg := cm.GetConfig()
	if c.catalog != "" {
		cfg.CatalogURL = c.catalog
	}
	if c.ephemeral {
		cfg.StorageBackend = constants.BackendMemory
	}

	hub, err := hubsrv.Open(cfg, logging.NewProvider(logger))
	if err != nil {
		return err
	}
	c.hub = hub
	logger.Debug("pipeline opened",
		zap.String("storage", cfg.StorageBackend),
		zap.String("catalog", cfg.CatalogURL))
	return nil
}

func (c *cli) close() {
	if c.hub != nil {
		fileio.Close(c.hub, c.logger.Sugar().Warnf, "failed to close storage")
		c.hub = nil
	}
	if c.logger != nil {
		_ = c.logger.Sync()
		c.logger = nil
	}
}

func (c *cli) ctx(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
