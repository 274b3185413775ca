// Package movies provides the local movie cache and the query layer on top of it.
//
// # Overview
//
// Repository persists CachedMovie rows and serves filtered, sorted windows of
// Movie views. Every read left-joins the favourites table, so the favourite
// flag always reflects the current state even for pages cached long ago.
//
// # Ordering
//
// Query orders by the selected sort mode first (rating descending or release
// date descending), then by page ascending and id ascending. The page key keeps
// fetch order among equal sort keys, so windows stay stable across reads.
//
// # Transactions
//
// SQLiteRepository works over dbx.DBTX, so the same code runs on *sql.DB or
// inside a transaction opened with dbx.WithTx / dbx.WithReadTx.
//
// Typical Usage
//
//	repo := movies.NewSQLiteRepository(db)
//	_ = repo.UpsertAll(ctx, fetched)
//	window, _ := repo.Query(ctx, movies.Query{Search: "alien", Limit: 20})
package movies
