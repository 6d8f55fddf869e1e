package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	gocmd "github.com/goliatone/go-command"

	vaultra "github.com/goliatone/go-vaultra"
	"github.com/goliatone/go-vaultra/adapters/gologger"
	"github.com/goliatone/go-vaultra/core"
	sqlstore "github.com/goliatone/go-vaultra/store/sql"
)

type Globals struct {
	APIURL      string `name:"api-url" help:"Backend base URL (overrides VAULTRA_API_URL)." placeholder:"URL"`
	StoreDriver string `name:"store-driver" help:"Client state driver: sqlite3 or postgres." placeholder:"DRIVER"`
	StoreDSN    string `name:"store-dsn" help:"Client state database DSN (overrides VAULTRA_STORE_DSN)." placeholder:"DSN"`
	JSON        bool   `name:"json" help:"Print compact JSON instead of indented output."`
	LogLevel    string `name:"log-level" default:"warn" help:"Log level written to stderr."`
}

// App is bound into every command's Run method.
type App struct {
	client *vaultra.Client
	facade *vaultra.Facade
	store  *sqlstore.ClientStateStore
	out    io.Writer
	errOut io.Writer
	json   bool
}

func newApp(ctx context.Context, globals Globals, stdout, stderr io.Writer, environ map[string]string) (*App, error) {
	runtime := core.Config{
		BaseURL: strings.TrimSpace(globals.APIURL),
		Store: core.StoreConfig{
			Driver: strings.TrimSpace(globals.StoreDriver),
			DSN:    strings.TrimSpace(globals.StoreDSN),
		},
	}
	cfg, err := core.ResolveConfig(ctx, core.NewCfgxConfigProvider(core.EnvConfigLoader{Environment: environ}), runtime)
	if err != nil {
		return nil, err
	}

	store, err := sqlstore.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	opts := gologger.Options("vaultra", gologger.NewLogrusProvider(stderr, globals.LogLevel), nil)
	opts = append(opts, vaultra.WithCredentialStore(store))
	layer, err := vaultra.NewAccessLayer(cfg, opts...)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	client, err := vaultra.NewClient(layer, vaultra.WithNavigator(stripeNavigator(stderr)))
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	facade, err := vaultra.NewFacade(client)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &App{
		client: client,
		facade: facade,
		store:  store,
		out:    stdout,
		errOut: stderr,
		json:   globals.JSON,
	}, nil
}

func (a *App) Close() error {
	if a == nil || a.store == nil {
		return nil
	}
	return a.store.Close()
}

// print writes value as JSON on stdout.
func (a *App) print(value any) error {
	var (
		payload []byte
		err     error
	)
	if a.json {
		payload, err = json.Marshal(value)
	} else {
		payload, err = json.MarshalIndent(value, "", "  ")
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(payload))
	return err
}

type validatable interface {
	Validate() error
}

// execute validates msg, runs a facade command and prints the value it
// stored.
func execute[T any](ctx context.Context, app *App, msg validatable, run func(context.Context) error) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	collector := gocmd.NewResult[T]()
	if err := run(gocmd.ContextWithResult(ctx, collector)); err != nil {
		return err
	}
	if value, ok := collector.Load(); ok {
		return app.print(value)
	}
	return nil
}

// query validates msg, runs a facade query and prints its result.
func query[R any](ctx context.Context, app *App, msg validatable, run func(context.Context) (R, error)) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	out, err := run(ctx)
	if err != nil {
		return err
	}
	return app.print(out)
}

func stripeNavigator(w io.Writer) vaultra.Navigator {
	return vaultra.NavigatorFunc(func(_ context.Context, url string) error {
		_, err := fmt.Fprintf(w, "Open this URL to connect Stripe:\n  %s\n", url)
		return err
	})
}
