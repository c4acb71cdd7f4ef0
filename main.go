package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shandysiswandi/gobenchmark/internal/app"
	"github.com/urfave/cli/v2"
)

func main() {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path of the configuration file",
		Value:   "./config/config.yaml",
		EnvVars: []string{"CONFIG_PATH"},
	}

	cliApp := &cli.App{
		Name:   "gobenchmark",
		Usage:  "web framework benchmark server",
		Flags:  []cli.Flag{configFlag},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP server",
				Flags:  []cli.Flag{configFlag},
				Action: serve,
			},
			{
				Name:  "seed",
				Usage: "create and fill the benchmark tables of the configured databases",
				Flags: []cli.Flag{configFlag},
				Action: func(c *cli.Context) error {
					ctx, cancel := context.WithTimeout(c.Context, 5*time.Minute)
					defer cancel()

					return app.Seed(ctx, c.String("config"))
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		slog.Error("failed to run application", "error", err)
		os.Exit(1)
	}
}

func serve(c *cli.Context) error {
	application := app.New(c.String("config")) // Initialize the application
	wait := application.Start()                 // Start the application and wait for the termination signal
	<-wait                                      // Wait for the application to receive a termination signal

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	application.Stop(ctx) // Stop the application gracefully
	return nil
}
