package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	parts := make([]string, 0, 2)
	if m := a.Mode(); m != "" {
		parts = append(parts, string(m))
	}
	if a.stream.Query != "" {
		parts = append(parts, fmt.Sprintf("%q", a.stream.Query))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Root starts the search pipeline and the connectivity watcher, loads the
// first page and then runs the REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printlnFn("Welcome to gophmovies CLI (type 'help' for commands)")

	go a.browser.Run(ctx)

	a.checkOnline(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	if err := a.awaitStream(ctx); err != nil {
		printlnFn("error:", err)
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}
