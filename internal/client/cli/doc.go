// Package cli provides the interactive gophmovies command-line client.
//
// It wires configuration, the local cache, the catalog client and an
// interactive REPL that keeps working offline. Typical flow: ask for the API
// token when none is configured, start the search pipeline and a background
// connectivity watcher, load the first page, then execute user commands.
//
// Key features:
//   - Browse the catalog page by page (list, more, prev, refresh)
//   - Debounced title search and local filters (search, filter, clear)
//   - Movie details with cache fallback (show)
//   - Favourites (fav, unfav, toggle, favs)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
