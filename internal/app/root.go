package app

import (
	"context"
	"os"

	"github.com/ansel1/merry"
	"github.com/fpawel/evictdash/internal/data"
	"github.com/fpawel/gohelp"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/powerman/structlog"
	"github.com/spf13/cobra"
)

type app struct {
	configFile string
	dbFile     string
	verbose    bool
	config     Config
}

// Execute runs the evictdash command line.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	a := new(app)
	cmd := &cobra.Command{
		Use:   "evictdash",
		Short: "County housing and eviction dashboard",
		Long: `evictdash keeps county demographics, housing costs and eviction filings in a
SQLite database, loads them from CSV and answers a fixed set of analytical
questions from the command line or over HTTP.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.init,
	}
	cmd.PersistentFlags().StringVar(&a.configFile, "config", "",
		"config file, yaml or toml (default "+defaultConfigFileName+", env "+envConfig+")")
	cmd.PersistentFlags().StringVar(&a.dbFile, "db", "", "SQLite database file, overrides the config")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(
		a.setupCmd(),
		a.loadCmd(),
		a.evictionsCmd(),
		a.countiesCmd(),
		a.queryCmd(),
		a.describeCmd(),
		a.serveCmd(),
		a.configCmd(),
	)
	return cmd
}

func (a *app) init(cmd *cobra.Command, _ []string) error {
	initLog()
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return merry.Append(err, "load .env")
	}
	configFile := a.configFile
	if configFile == "" {
		configFile = os.Getenv(envConfig)
	}
	if configFile == "" {
		configFile = defaultConfigFileName
	}
	c, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	if a.dbFile != "" {
		c.DB.File = a.dbFile
	}
	level := c.LogLevel
	if a.verbose {
		level = "debug"
	}
	setLogLevel(level)
	a.configFile = configFile
	a.config = c
	log.Debug("config", "config", c)
	return nil
}

func (a *app) withDB(ctx context.Context, work func(ctx context.Context, db *sqlx.DB) error) error {
	log.Debug("open database: " + a.config.DB.File)
	db, err := data.Open(a.config.DB)
	if err != nil {
		return err
	}
	defer log.ErrIfFail(db.Close)
	return work(ctx, db)
}

func commandLog(cmd *cobra.Command) *structlog.Logger {
	return gohelp.NewLogWithSuffixKeys("command", cmd.CommandPath())
}
