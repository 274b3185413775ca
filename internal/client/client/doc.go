// Package client contains the remote catalog client and local database
// bootstrap for gophmovies.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) for the movie
//     catalog: FetchPage, FetchMovie and Ping.
//  2. A REST implementation (see HTTPClient) that sends a bearer token,
//     decodes JSON and maps failures to sentinel errors.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations),
//     opening an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Failures are reported through sentinel errors matched with errors.Is:
//
//   - ErrUnavailable: the catalog could not be reached (dial failure, reset,
//     timeout). Callers treat it as transient.
//   - ErrUnauthorized, ErrNotFound, ErrProtocol: the catalog answered, but
//     not with what was asked for.
//
// Caller cancellation is returned as context.Canceled and is not a
// transport failure.
package client
