package cli

import (
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var versionBuild bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the launcher version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("sercha-launcher version %s\n", version)
		if !versionBuild {
			return
		}
		cmd.Printf("go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		if rev := vcsRevision(); rev != "" {
			cmd.Printf("commit: %s\n", rev)
		}
	},
}

// vcsRevision reports the commit the binary was built from, if recorded.
func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}

func init() {
	versionCmd.Flags().BoolVar(&versionBuild, "build", false, "also print Go and commit details")
	rootCmd.AddCommand(versionCmd)
}
