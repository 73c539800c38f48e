// Package commands implements the vizexport CLI.
package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/simviz/vizexport/pkg/log"
)

var (
	// ErrInvalidArgument indicates invalid command arguments were provided.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrLogHandlerFailed indicates the log handler could not be created.
	ErrLogHandlerFailed = errors.New("failed to create log handler")
)

// NewRootCmd returns the root command.
func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	args := NewRootArgs()

	cmd := &cobra.Command{
		Use:           name,
		Short:         shortDesc,
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       GetVersionString(),
	}

	cmd.PersistentFlags().StringVar(args.logLevel, "log_level", "warn",
		"Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(args.logFormat, "log_format", "",
		"Set the log format (text, logfmt, json); defaults to text on a terminal, json otherwise")

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		logFormat := args.GetLogFormat()
		if logFormat == "" {
			logFormat = defaultLogFormat()
		}

		h, err := log.CreateHandlerWithStrings(cc.ErrOrStderr(), args.GetLogLevel(), logFormat)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLogHandlerFailed, err)
		}

		slog.SetDefault(slog.New(h))

		return nil
	}

	cmd.AddCommand(NewExportCmd(args))
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

func defaultLogFormat() string {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return log.FormatText
	}

	return log.FormatJSON
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
