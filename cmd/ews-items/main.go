package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/diwise/ews-client/internal/pkg/config"
	"github.com/diwise/ews-client/pkg/ews/client"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

const (
	appName string = "ews-items"
)

type app struct {
	cfg    *config.Config
	client *client.Client
}

func setup(ctx context.Context, cmd *cli.Command) (*app, error) {
	log := logging.GetFromContext(ctx)

	f, err := os.Open(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration file: %w", err)
	}
	defer f.Close()

	cfg, err := config.LoadConfiguration(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if token := env.GetVariableOrDefault(ctx, "EWS_AUTHORIZATION", ""); token != "" {
		cfg.Headers["Authorization"] = token
	}

	debug := "false"
	if cfg.Debug || cmd.Bool("debug") {
		debug = "true"
	}

	transport := client.NewHTTPTransport(cfg.Endpoint,
		client.ServerVersion(cfg.ServerVersion),
		client.Headers(cfg.Headers),
		client.Debug(debug),
	)

	c := client.New(transport,
		client.DefaultConflictResolution(cfg.Update.ConflictResolution),
		client.DefaultNotificationMode(cfg.Update.NotificationMode),
	)

	log.Debug("configuration loaded", "endpoint", cfg.Endpoint, "server_version", cfg.ServerVersion)

	return &app{cfg: cfg, client: c}, nil
}

func main() {
	appVersion := buildinfo.SourceVersion()

	ctx, log, cleanup := o11y.Init(context.Background(), appName, appVersion, "json")
	defer cleanup()

	ctx = logging.NewContextWithLogger(ctx, log, "version", appVersion)

	cmd := &cli.Command{
		Name:  appName,
		Usage: "Find, create and update calendar items and tasks in an Exchange mailbox",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   "config/ews.yaml",
				Sources: cli.EnvVars("EWS_CONFIG_FILE"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Log failed requests and responses",
				Sources: cli.EnvVars("EWS_DEBUG"),
			},
		},
		Commands: []*cli.Command{
			betweenCommand(),
			createCommand(),
			createTaskCommand(),
			updateCommand(),
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Error("command failed", slog.String("err", err.Error()))
		cleanup()
		os.Exit(1)
	}
}
