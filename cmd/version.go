// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func versionCmd(opts Options) *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the version and commit",
		Action: func(_ context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprintf(cmd.Root().Writer, "brec %s (commit: %s)\n", opts.Version, opts.Commit)
			return err //nolint:wrapcheck
		},
	}
}
