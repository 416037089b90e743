package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aschutz-mcvi/mcviplanner/planner"
)

var configInitPath string

var configInitCmd = &cobra.Command{
	Use:   "config-init",
	Short: "Write a YAML config file populated with planner defaults",
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().StringVar(&configInitPath, "out", "mcviplan.yaml", "output path")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := planner.SaveConfigFile(planner.DefaultConfig(), configInitPath); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", configInitPath)
	return nil
}
