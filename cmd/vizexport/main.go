package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/simviz/vizexport/cmd/vizexport/commands"
)

const (
	cmdName = "vizexport"

	shortDesc = "The vizexport Command Line Interface (CLI)."
	longDesc  = `vizexport serializes simulation state into portable VTK XML files.

It writes agent populations as point-cloud datasets (.vtu, with .pvtu
manifests for multi-piece parallel output) and diffusion field lattices as
structured grids (.vti), readable by ParaView and other VTK-aware tools
without this tool depending on VTK itself.
`
)

func main() {
	cmd := commands.NewRootCmd(cmdName, shortDesc, longDesc)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
