package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context, args []string) error
	Create(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Update(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Meta(ctx context.Context, args []string) error
	AddMeta(ctx context.Context, args []string) error
	EditMeta(ctx context.Context, args []string) error
	DelMeta(ctx context.Context, args []string) error
	FindMeta(ctx context.Context, args []string) error
	Stats(ctx context.Context, args []string) error
	Check(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  (l)ist                        list sims
  create                        create a sim
  show     [sim-id]             show a sim and its metadata
  update   [sim-id]             replace a sim's log
  delete   [sim-id]             delete a sim and its metadata
  meta     [sim-id]             list a sim's metadata
  addmeta  [sim-id]             add a metadata entry
  editmeta [sim-id] [meta-id]   change a metadata entry
  delmeta  [sim-id] [meta-id]   delete a metadata entry
  findmeta [sim-id] [key]       find metadata by key
  stats    [sim-id]             metadata statistics
  check                         repair index and orphaned records
  exit | quit                   leave the program`

// runREPL reads commands line by line from reader and dispatches them to a.
// It exits on EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers print
// their own messages.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("sk %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			_ = a.List(ctx, args)

		case "create":
			_ = a.Create(ctx, args)

		case "show":
			_ = a.Show(ctx, args)

		case "update":
			_ = a.Update(ctx, args)

		case "delete":
			_ = a.Delete(ctx, args)

		case "meta":
			_ = a.Meta(ctx, args)

		case "addmeta":
			_ = a.AddMeta(ctx, args)

		case "editmeta":
			_ = a.EditMeta(ctx, args)

		case "delmeta":
			_ = a.DelMeta(ctx, args)

		case "findmeta":
			_ = a.FindMeta(ctx, args)

		case "stats":
			_ = a.Stats(ctx, args)

		case "check":
			_ = a.Check(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
