package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	goerrors "github.com/goliatone/go-errors"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, nil))
}

// run parses args and executes the selected command. environ replaces the
// process environment when non-nil.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, environ map[string]string) int {
	var cli CLI
	exitCode := -1
	parser, err := kong.New(&cli,
		kong.Name("vaultra"),
		kong.Description("Command line client for the Vaultra financial metrics API."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exitCode = code }),
	)
	if err != nil {
		fmt.Fprintf(stderr, "vaultra: %v\n", err)
		return 2
	}
	kctx, err := parser.Parse(args)
	if exitCode >= 0 {
		return exitCode
	}
	if err != nil {
		fmt.Fprintf(stderr, "vaultra: %v\n", err)
		return 2
	}

	app, err := newApp(ctx, cli.Globals, stdout, stderr, environ)
	if err != nil {
		fmt.Fprintf(stderr, "vaultra: %s\n", failureMessage(err))
		return 1
	}
	defer app.Close()

	kctx.BindTo(ctx, (*context.Context)(nil))
	if err := kctx.Run(app); err != nil {
		fmt.Fprintf(stderr, "vaultra: %s\n", failureMessage(err))
		return 1
	}
	return 0
}

func failureMessage(err error) string {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && rich.Message != "" {
		return rich.Message
	}
	return err.Error()
}
