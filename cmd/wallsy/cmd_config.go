package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"wallsy/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the active configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load("")
		if err != nil {
			return err
		}

		fmt.Println("config file:", filepath.Join(cfg.Dir(), config.FileName))
		fmt.Println("media_dir:", cfg.MediaDir)
		fmt.Println("effects_dir:", cfg.EffectsDir)
		fmt.Println("wallpaper_dir:", cfg.WallpaperDir)
		fmt.Println("set_command:", cfg.SetCommand)
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove the wallsy config directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.DefaultDir()
		if err != nil {
			return err
		}

		if err := config.Reset(dir); err != nil {
			return err
		}

		fmt.Fprintln(os.Stderr, "removed", dir)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the wallsy version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wallsy %s\n", version)
	},
}

// overridden at build time via -ldflags
var version = "dev"

func init() {
	configCmd.AddCommand(configResetCmd)
	rootCmd.AddCommand(configCmd, versionCmd)
}
