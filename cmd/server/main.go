// Package main is the entry point for the empire gRPC server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "empire-api",
	Short: "Empire governance gRPC server",
	Long:  `Empire API runs the governance and territorial war engine: players, empires, territory, and the war lifecycle.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
