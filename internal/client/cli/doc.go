// Package cli provides the interactive simkeeper command-line client.
//
// It wires configuration, the backing store and the data access layer to a
// small REPL. Each command prompts for what it needs (ids may also be given
// inline, e.g. "show <id>"), calls one store operation and prints either the
// result or the failure message.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits
// or input ends. See runREPL for the command table.
package cli
