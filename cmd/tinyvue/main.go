package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tinyvue/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "tinyvue",
		Short: "Render and preview reactive components",
		Long: `tinyvue mounts reactive components described in YAML files.

A component has a template with {{ path }} placeholders and the
state those placeholders read. Writing to the state re-renders
exactly the components that read it.

  • render prints the markup, then the markup after each --set
  • serve runs a live preview in the browser`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every render and trigger")

	rootCmd.AddCommand(
		renderCmd(),
		serveCmd(),
		versionCmd(),
	)

	return rootCmd
}

// printer writes CLI status lines, coloured when stdout is a terminal.
type printer struct {
	w      io.Writer
	colors bool
}

func newPrinter(w io.Writer) printer {
	f, ok := w.(*os.File)
	return printer{w: w, colors: ok && errors.IsTerminal(f)}
}

// success prints a success message.
func (p printer) success(format string, args ...any) {
	mark := "✓"
	if p.colors {
		mark = "\033[32m✓\033[0m"
	}
	fmt.Fprintf(p.w, "%s %s\n", mark, fmt.Sprintf(format, args...))
}

// info prints an info message.
func (p printer) info(format string, args ...any) {
	fmt.Fprintf(p.w, "  %s\n", fmt.Sprintf(format, args...))
}

// header prints a dimmed section header.
func (p printer) header(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	if p.colors {
		text = "\033[90m" + text + "\033[0m"
	}
	fmt.Fprintln(p.w, text)
}
