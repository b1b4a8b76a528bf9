// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jeranaias/siteshell/internal/index"
	"github.com/jeranaias/siteshell/internal/logging"
)

type buildOptions struct {
	from     string
	db       string
	watch    bool
	debounce time.Duration
}

func addBuildFlags(fs *pflag.FlagSet, o *buildOptions) {
	fs.StringVar(&o.from, "from", "", "directory of markdown posts (default index.dir)")
	fs.StringVar(&o.db, "db", "", "sqlite database to write (default index.db_path)")
	fs.BoolVarP(&o.watch, "watch", "w", false, "rebuild whenever a post changes")
	fs.DurationVar(&o.debounce, "debounce", 500*time.Millisecond, "quiet period before a rebuild")
}

func newIndexCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build or inspect the post index",
	}

	bo := &buildOptions{}
	build := &cobra.Command{
		Use:   "build",
		Short: "Build the sqlite index from a directory of markdown posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if bo.from == "" {
				bo.from = cfg.Index.Dir
			}
			if bo.db == "" {
				bo.db = cfg.Index.DBPath
			}
			if bo.from == "" {
				return fmt.Errorf("no post directory: pass --from or set index.dir")
			}

			log := logging.Discard()
			if bo.watch {
				log = logrus.New()
				log.SetOutput(cmd.ErrOrStderr())
			}
			return runIndexBuild(cmd.Context(), bo, cmd.OutOrStdout(), log)
		},
	}
	addBuildFlags(build.Flags(), bo)
	cmd.AddCommand(build)

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "List the records of the configured index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			src, closeSrc, err := index.New(cfg.Index)
			if err != nil {
				return err
			}
			defer closeSrc()

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Index.Timeout())
			defer cancel()
			records, err := src.Fetch(ctx)
			if err != nil {
				return err
			}
			printRecords(cmd.OutOrStdout(), records)
			return nil
		},
	})

	return cmd
}

func runIndexBuild(ctx context.Context, o *buildOptions, out io.Writer, log logrus.FieldLogger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	dst, err := index.OpenSQLite(o.db)
	if err != nil {
		return err
	}
	defer dst.Close()

	src := index.NewMarkdownIndex(o.from)
	rebuild := func(ctx context.Context) error {
		n, err := index.Build(ctx, src, dst)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %d records from %s into %s\n", SuccessStyle.Render("indexed"), n, src.Dir(), dst.Path())
		return nil
	}
	if err := rebuild(ctx); err != nil {
		return err
	}
	if !o.watch {
		return nil
	}

	w, err := index.NewWatcher(o.from, o.debounce, rebuild, log)
	if err != nil {
		return fmt.Errorf("watch %s: %w", o.from, err)
	}
	fmt.Fprintln(out, DimStyle.Render("watching for changes, ctrl+c to stop"))
	return w.Run(ctx)
}

func printRecords(w io.Writer, records []index.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, DimStyle.Render("no records"))
		return
	}
	for _, r := range records {
		fmt.Fprintf(w, "%s  %s\n", LabelStyle.Render(r.ID), r.Title)
	}
}
