package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yarrowhq/ui-verify/browser"
)

func newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Download the browser runtime used for verification",
		Long:  "Downloads the playwright driver and a matching Chromium build. Run this once before the first verification run.",
		RunE: func(cmd *cobra.Command, args []string) error {
			printMessage("Downloading the playwright driver and Chromium, this can take a few minutes...")

			if err := browser.Install(); err != nil {
				return fmt.Errorf("failed to install browser runtime: %w", err)
			}

			printMessage("Browser runtime installed")

			return nil
		},
	}
}
