// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/siteshell/internal/ui/shell"
)

// BuildInfo is stamped in by the linker.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCmd builds the siteshell command tree.
func NewRootCmd(info BuildInfo) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "siteshell",
		Short:         "A shell for browsing the site from a terminal",
		Long:          "siteshell is a small shell over the site's sections and posts.\nType 'help' inside it for the command list.",
		Version:       info.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default ~/.siteshell/config.toml)")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "use the line-mode shell instead of the full-screen UI")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "theme for this run: dark, light or auto")

	cmd.AddCommand(newIndexCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newVersionCmd(info))
	return cmd
}

// Execute runs the command line and returns the process exit code.
func Execute(info BuildInfo) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd(info).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("error:"), err)
		return 1
	}
	return 0
}

func runShell(ctx context.Context, opts *rootOptions, stdin io.Reader, stdout, stderr io.Writer) error {
	a, err := openApp(opts, stderr)
	if err != nil {
		return err
	}
	defer a.close()

	if opts.plain || !IsTTY() || !IsStdoutTTY() {
		r := NewRunner(a.cfg, a.src, a.log, stdout)
		r.reload = opts.reloader()
		reader := newLinerReader(r.complete)
		defer reader.Close()
		return r.Run(ctx, reader)
	}

	m := shell.New(shell.Options{
		Config: a.cfg,
		Index:  a.src,
		Log:    a.log,
		Reload: opts.reloader(),
	})

	progOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithInput(stdin), tea.WithOutput(stdout)}
	if a.cfg.UI.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(m, progOpts...).Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("shell: %w", err)
	}
	return nil
}
