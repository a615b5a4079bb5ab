package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/colly23421/seo-ai-audit/internal/analyzer"
	"github.com/colly23421/seo-ai-audit/internal/handlers"
)

func main() {
	app := &cli.App{
		Name:  "auditctl",
		Usage: "run an SEO and structured-data audit from the command line",
		Commands: []*cli.Command{
			{
				Name:      "audit",
				Usage:     "audit a live URL",
				ArgsUsage: "<url>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "suppress progress logging",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Value: 30 * time.Second,
						Usage: "overall audit deadline",
					},
					&cli.StringFlag{
						Name:  "promo-url",
						Usage: "append a promotional recommendation pointing at this URL",
					},
				},
				Action: auditAction,
			},
			{
				Name:      "audit-file",
				Usage:     "audit saved HTML markup (no network probes)",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "suppress progress logging",
					},
				},
				Action: auditFileAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func setupLogging(c *cli.Context) {
	level := slog.LevelInfo
	if c.Bool("quiet") {
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func auditAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one URL argument")
	}
	setupLogging(c)

	target, err := handlers.NormalizeTargetURL(c.Args().First())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.Duration("timeout"))
	defer cancel()

	a := analyzer.New()
	result, err := a.AuditURL(ctx, target, c.String("promo-url"))
	if err != nil {
		return err
	}
	result.RegistrableHost = handlers.RegistrableHost(target)

	return printJSON(result)
}

func auditFileAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one file argument")
	}
	setupLogging(c)

	markup, err := os.ReadFile(c.Args().First())
	if err != nil {
		return err
	}

	a := analyzer.New()
	result, err := a.AuditMarkup(context.Background(), "", string(markup), false, "")
	if err != nil {
		return err
	}

	return printJSON(result)
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
