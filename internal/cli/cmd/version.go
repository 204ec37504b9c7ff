package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/bnema/dragkit/internal/domain/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		info := buildInfo
		if info.Version == "" {
			info.Version = "dev"
		}
		if info.GoVersion == "" {
			info.GoVersion = runtime.Version()
		}
		fmt.Printf("dragkit %s (%s, built %s, %s)\n%s\n", info.Version, info.Commit, info.BuildDate, info.GoVersion, build.RepoURL())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
