package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/simkeeper/internal/client/client"
	"github.com/dmitrijs2005/simkeeper/internal/client/config"
	"github.com/dmitrijs2005/simkeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/simkeeper/internal/client/services"
	"github.com/dmitrijs2005/simkeeper/internal/logging"
)

type App struct {
	config *config.Config
	store  services.Store
	repo   kv.Repository
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the configured backing store and builds the data access
// layer on top of it.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	repo, err := client.Open(ctx, c, log)
	if err != nil {
		return nil, fmt.Errorf("error opening store: %w", err)
	}

	return &App{
		config: c,
		store:  services.NewStore(ctx, repo, log),
		repo:   repo,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// Run starts the REPL and closes the store when it returns.
func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)

	if isTerminal() {
		printlnFn("simkeeper (type 'help' for commands)")
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close(ctx context.Context) {
	if a.repo == nil {
		return
	}
	if err := a.repo.Close(); err != nil {
		a.log.Warn(ctx, "error closing store", "error", err)
	}
}

// getStatus shows the backend and the number of stored Sims.
func (a *App) getStatus() string {
	backend := ""
	if a.config != nil {
		backend = a.config.Backend
	}
	sims := a.store.GetAllSims(context.Background())
	if !sims.Success {
		return fmt.Sprintf("(%s)", backend)
	}
	return fmt.Sprintf("(%s %d)", backend, len(sims.Data))
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// report prints the failure of r and returns it as an error.
func report[T any](a *App, r services.Result[T]) error {
	if r.Success {
		return nil
	}
	a.println("Error:", r.Error)
	return r.Err()
}
