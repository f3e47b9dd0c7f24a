package main

import (
	"Mingle/config"
	"Mingle/pkg/database"
	"Mingle/pkg/log"
	"Mingle/pkg/server"
	"Mingle/pkg/snowflake"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	path := fmt.Sprintf("configs/config.%s.yaml", env)
	cfg := config.New(path)
	log.SetDebug(cfg.Debug())
	if err := snowflake.SetNode(cfg.App.NodeID); err != nil {
		log.L.Fatal("invalid app.node_id", zap.Int64("node_id", cfg.App.NodeID), zap.Error(err))
	}

	cliApp := &cli.App{
		Name:  "api-server",
		Usage: "mingle social profile api",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http server",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "migrate", Usage: "run database migration before serving"},
				},
				Action: func(ctx *cli.Context) error {
					appProvider, cleanup, err := InitServer(cfg)
					if err != nil {
						return err
					}
					defer cleanup()
					if ctx.Bool("migrate") {
						if err := migrate(ctx, cfg); err != nil {
							return err
						}
					}
					return server.Run(ctx, appProvider)
				},
			},
			{
				Name:  "migrate",
				Usage: "create or update database tables",
				Action: func(ctx *cli.Context) error {
					return migrate(ctx, cfg)
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("failed to start server", zap.Error(err))
	}
}

func migrate(ctx *cli.Context, cfg *config.Config) error {
	db, cleanup, err := database.NewDB(cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	return database.Migrate(ctx.Context, db)
}
