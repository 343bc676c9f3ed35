package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/dayweave/internal/cli"
	"github.com/julianstephens/dayweave/internal/constants"
	"github.com/julianstephens/dayweave/internal/errors"
	"github.com/julianstephens/dayweave/internal/keyring"
	"github.com/julianstephens/dayweave/internal/logger"
	"github.com/julianstephens/dayweave/internal/storage"
	"github.com/julianstephens/dayweave/internal/storage/postgres"
	"github.com/julianstephens/dayweave/internal/storage/sqlite"
)

var CLI struct {
	Version   kong.VersionFlag
	Config    string `help:"SQLite database path, a PostgreSQL connection string without a password, or 'postgres' to use the keyring." env:"DAYWEAVE_CONFIG" default:"${default_config}"`
	Debug     bool   `help:"Log debug output to stderr." env:"DAYWEAVE_DEBUG"`
	LogFormat string `help:"Log file format." enum:"text,logfmt,json" default:"text" env:"DAYWEAVE_LOG_FORMAT"`
	User      string `help:"User whose records are read and written." default:"${default_user}"`

	Init     cli.InitCmd     `cmd:"" help:"Initialize dayweave storage."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Settings cli.SettingsCmd `cmd:"" help:"Manage settings."`
	Window   cli.WindowCmd   `cmd:"" help:"Manage availability windows."`
	Daytype  cli.DayTypeCmd  `cmd:"" name:"daytype" help:"Manage day types."`
	Task     cli.TaskCmd     `cmd:"" help:"Manage tasks."`
	Project  cli.ProjectCmd  `cmd:"" help:"Manage projects."`
	Goal     cli.GoalCmd     `cmd:"" help:"Manage goals."`
	Habit    cli.HabitCmd    `cmd:"" help:"Manage habits and habit tracking."`
	Place    cli.PlaceCmd    `cmd:"" help:"Place work into a day's windows."`
	Keyring  cli.KeyringCmd  `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage database backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Energy-aware placement of tasks and habits into daily windows"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
			"default_user":   constants.DefaultUserID,
		},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: logDir(CLI.Config), Format: CLI.LogFormat}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	command := ctx.Command()
	appCtx := &cli.Context{UserID: CLI.User}

	if !strings.HasPrefix(command, "keyring") {
		store, err := openStore(CLI.Config)
		if err != nil {
			errors.Fatal(err)
		}
		defer store.Close()
		appCtx.Store = store

		if !strings.HasPrefix(command, "init") && !strings.HasPrefix(command, "doctor") {
			if err := store.Load(); err != nil {
				store.Close()
				errors.Fatal(err)
			}
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		if appCtx.Store != nil {
			appCtx.Store.Close()
		}
		errors.Fatal(err)
	}
}

// openStore picks a backend from the --config value.
func openStore(config string) (storage.Provider, error) {
	switch {
	case config == "postgres":
		connStr, ok, err := keyring.ResolveConnectionString()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("no connection string found, run 'dayweave keyring set' or export %s", constants.EnvPostgresConnection)
		}
		if err := postgres.ValidateConnString(connStr); err != nil && !stderrors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, err
		}
		return postgres.New(connStr), nil
	case strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://") || strings.Contains(config, "host="):
		if err := postgres.ValidateConnString(config); err != nil {
			return nil, err
		}
		return postgres.New(config), nil
	default:
		return sqlite.NewStore(expandHome(config)), nil
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func logDir(config string) string {
	if strings.HasSuffix(config, ".db") {
		return filepath.Dir(expandHome(config))
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(dir, constants.AppName)
}
