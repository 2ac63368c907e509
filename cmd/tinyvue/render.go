package main

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tinyvue/internal/config"
	"github.com/vango-dev/tinyvue/internal/errors"
	"github.com/vango-dev/tinyvue/pkg/app"
	"github.com/vango-dev/tinyvue/pkg/host"
	"github.com/vango-dev/tinyvue/pkg/reactive"
)

type renderOptions struct {
	file     string
	selector string
	sets     []string
	quiet    bool
}

func renderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render <component.yaml>",
		Short: "Render a component and apply state changes",
		Long: `Render a component on an in-memory document.

The first render is printed, then each --set is applied in order
and the resulting render printed after it. A --set that does not
touch state the template reads prints nothing.

Examples:
  tinyvue render greeting.yaml
  tinyvue render greeting.yaml --set state.title=y
  tinyvue render greeting.yaml --set count=1 --set count=2 --quiet`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.file = args[0]
			return runRender(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.selector, "selector", "", "Mount selector (default from the component, or #app)")
	cmd.Flags().StringArrayVar(&opts.sets, "set", nil, "State change path=value, applied in order (repeatable)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Print only markup")

	return cmd
}

func runRender(out io.Writer, opts renderOptions) error {
	c, err := config.Load(opts.file)
	if err != nil {
		return err
	}
	if opts.selector != "" {
		c.Selector = opts.selector
	}

	// Validate every --set before rendering anything.
	type assignment struct {
		arg   string
		path  string
		value any
	}
	assignments := make([]assignment, 0, len(opts.sets))
	for _, arg := range opts.sets {
		path, value, err := config.ParseAssignment(arg)
		if err != nil {
			return err
		}
		assignments = append(assignments, assignment{arg: arg, path: path, value: value})
	}

	doc := host.NewDocument()
	el := doc.AppendFor(c.Selector, c.Template)

	p := newPrinter(out)
	el.OnReplace(func(html string) {
		if !opts.quiet {
			p.header("── render %d", len(el.History()))
		}
		fmt.Fprintln(out, html)
	})

	a := app.CreateRenderer(doc).CreateApp(app.Options{
		Name:  c.Name,
		Data:  c.DataFunc(),
		Setup: c.SetupFunc(),
	})
	if err := a.Mount(c.Selector); err != nil {
		return mountError(err)
	}

	for _, as := range assignments {
		if !opts.quiet {
			p.info("set %s", as.arg)
		}
		if err := a.Proxy().SetPath(as.path, as.value); err != nil {
			return setError(as.arg, err)
		}
		if err := a.Err(); err != nil {
			return errors.New("E006").Wrap(err)
		}
	}

	if !opts.quiet {
		p.success("%s: %d render(s)", c.Name, a.Renders())
	}
	return nil
}

func mountError(err error) error {
	if stderrors.Is(err, reactive.ErrCycle) {
		return errors.New("E005").Wrap(err)
	}
	var tmplErr *app.TemplateError
	if stderrors.As(err, &tmplErr) {
		return errors.New("E003").Wrap(err).
			WithSuggestion("Every {{ needs a matching }} with a path between them")
	}
	return errors.New("E003").Wrap(err)
}

func setError(arg string, err error) error {
	switch {
	case stderrors.Is(err, reactive.ErrCycle):
		return errors.New("E005").Wrap(err)
	case stderrors.Is(err, app.ErrPath):
		return errors.New("E004").Wrap(err).
			WithSuggestion(fmt.Sprintf("Every segment of %q but the last must name nested state", arg))
	}
	return errors.New("E006").Wrap(err)
}
