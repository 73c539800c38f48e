package commands

import (
	"github.com/spf13/cobra"

	"github.com/simviz/vizexport/internal/version"
)

func GetVersionString() string {
	return version.GetVersionString()
}

// NewVersionCmd returns the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version of the vizexport CLI",
		Run: func(cc *cobra.Command, _ []string) {
			cc.Println(GetVersionString())
		},
	}
}
