package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mind-engage/mindengage-papergen/internal/config"
	"github.com/mind-engage/mindengage-papergen/internal/version"
)

var (
	cfgFile string
	vp      = config.New()
)

var rootCmd = &cobra.Command{
	Use:   "papergen",
	Short: "papergen generates exam question papers from a subject syllabus",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile == "" {
			return nil
		}
		vp.SetConfigFile(cfgFile)
		return vp.MergeInConfig()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("mode", "", "offline|online")
	_ = vp.BindPFlag("mode", rootCmd.PersistentFlags().Lookup("mode"))

	rootCmd.AddCommand(serveCmd, generateCmd, version.Cmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
