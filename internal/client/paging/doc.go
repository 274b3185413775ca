// Package paging keeps a local movie cache in step with the remote catalog
// and serves paginated windows over it.
//
// Mediator handles the three load intents (Refresh, Prepend, Append): it
// resolves the page to fetch from stored page keys, fetches it, and writes
// movies, keys and metadata in one transaction. Refresh replaces the cache.
//
// Pager is one pagination session over a (search, filter) query. It reads
// windows through a Source and calls the mediator only when the cache
// cannot fill the next window. Prepend and append track their end of data
// independently.
package paging
