package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	More(ctx context.Context) error
	Prev(ctx context.Context) error
	Refresh(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Filter(ctx context.Context, args []string) error
	Clear(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Fav(ctx context.Context, args []string) error
	Unfav(ctx context.Context, args []string) error
	Toggle(ctx context.Context, args []string) error
	Favs(ctx context.Context) error
	Status(ctx context.Context) error
}

const helpText = `Available commands:
  (l)ist                 show the loaded movies
  more | n               load the next page
  prev | p               load the previous page
  (r)efresh [n]          reload from the catalog, resuming near movie n
  search [text]          search titles (no text clears the search)
  filter [k=v ...]       rating=<0-10> year=<yyyy|any> sort=<none|rating|release>
  clear                  reset search and filter
  show <id>              movie details
  fav <id> | unfav <id>  add or remove a favourite
  toggle <id>            flip a favourite
  favs                   list favourites
  status                 session status
  exit | quit            leave the program`

// runREPL starts a simple read–eval–print loop for the gophmovies CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a' with the remaining tokens as
// arguments. Unknown commands are reported back to the user. The loop exits
// on scanner EOF, when ctx is done, or when the user types "exit" or "quit".
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("gm %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		var err error
		switch cmd {
		case "help", "h", "?":
			printlnFn(helpText)

		case "l", "list":
			err = a.List(ctx)

		case "n", "more", "next":
			err = a.More(ctx)

		case "p", "prev":
			err = a.Prev(ctx)

		case "r", "refresh":
			err = a.Refresh(ctx, args)

		case "s", "search":
			err = a.Search(ctx, args)

		case "f", "filter":
			err = a.Filter(ctx, args)

		case "clear":
			err = a.Clear(ctx)

		case "show":
			err = a.Show(ctx, args)

		case "fav":
			err = a.Fav(ctx, args)

		case "unfav":
			err = a.Unfav(ctx, args)

		case "toggle":
			err = a.Toggle(ctx, args)

		case "favs":
			err = a.Favs(ctx)

		case "status":
			err = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("error:", err)
		}
	}
}
