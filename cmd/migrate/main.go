// Command migrate applies the versioned SQL files in migrations/ with the atlas CLI.
//
//	migrate apply   apply pending migrations
//	migrate status  print the current revision and pending files
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"coach-booking/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
)

const timeout = 2 * time.Minute

func main() {
	cmd := "apply"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	if err := run(cmd); err != nil {
		slog.Error("Migration failed", "command", cmd, "error", err)
		os.Exit(1)
	}
}

func run(cmd string) error {
	cfg, err := config.LoadMigrationConfig()
	if err != nil {
		return err
	}

	workdir, err := atlasexec.NewWorkingDir(atlasexec.WithMigrations(os.DirFS(cfg.Dir)))
	if err != nil {
		return fmt.Errorf("failed to prepare working dir: %w", err)
	}
	defer workdir.Close()

	client, err := atlasexec.NewClient(workdir.Path(), cfg.AtlasBin)
	if err != nil {
		return fmt.Errorf("failed to create atlas client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	switch cmd {
	case "apply":
		return apply(ctx, client, cfg.DB.BuildDSN())
	case "status":
		return status(ctx, client, cfg.DB.BuildDSN())
	default:
		return fmt.Errorf("unknown command %q: want apply or status", cmd)
	}
}

func apply(ctx context.Context, client *atlasexec.Client, url string) error {
	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{URL: url})
	if err != nil {
		return err
	}
	slog.Info("Migrations applied",
		"applied", len(res.Applied),
		"from", res.Current,
		"to", res.Target)
	return nil
}

func status(ctx context.Context, client *atlasexec.Client, url string) error {
	res, err := client.MigrateStatus(ctx, &atlasexec.MigrateStatusParams{URL: url})
	if err != nil {
		return err
	}
	slog.Info("Migration status",
		"status", res.Status,
		"current", res.Current,
		"next", res.Next,
		"pending", len(res.Pending))
	return nil
}
