// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tcnksm/go-latest"
)

// releaseSource is where released versions are tagged.
var releaseSource latest.Source = &latest.GithubTag{
	Owner:      "jeranaias",
	Repository: "siteshell",
}

func newVersionCmd(info BuildInfo) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			printVersion(out, info)
			if check {
				return checkLatest(out, releaseSource, info.Version)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "check whether a newer release exists")
	return cmd
}

func printVersion(w io.Writer, info BuildInfo) {
	fmt.Fprintf(w, "%s %s\n", TitleStyle.Render("siteshell"), ValueStyle.Render(info.Version))
	if info.Commit != "" {
		fmt.Fprintf(w, "  %s %s\n", DimStyle.Render("commit:"), info.Commit)
	}
	if info.Date != "" {
		fmt.Fprintf(w, "  %s %s\n", DimStyle.Render("built:"), info.Date)
	}
}

func checkLatest(w io.Writer, src latest.Source, current string) error {
	current = strings.TrimPrefix(current, "v")
	if current == "" || current == "dev" {
		fmt.Fprintln(w, DimStyle.Render("Development build, skipping update check."))
		return nil
	}

	res, err := latest.Check(src, current)
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}
	if res.Outdated {
		fmt.Fprintf(w, "%s %s (you have %s)\n", WarningStyle.Render("A new version is available:"), res.Current, current)
		fmt.Fprintln(w, "Download it from https://github.com/jeranaias/siteshell/releases")
		return nil
	}
	fmt.Fprintf(w, "%s %s\n", SuccessStyle.Render("You are using the latest version:"), current)
	return nil
}
