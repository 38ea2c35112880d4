package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

const defaultVersion = "(devel)"

// version may be set with -ldflags='-X github.com/funvibe/rush/pkg/cli.version=<version>'.
var version = defaultVersion

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print rush version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "rush version %s %s/%s\n", buildVersion(), runtime.GOOS, runtime.GOARCH)
			return err
		},
	}
}

// buildVersion prefers the ldflags version, then the module version.
func buildVersion() string {
	if version != defaultVersion {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return defaultVersion
}
