// Package core orchestrates a statistics run over the configured datasets.
//
// It holds the domain flow independent of any transport, so the CLI and the
// HTTP server drive the same code:
//
//  1. [Service.Run] loads every dataset through a tableload.Loader, in
//     parallel up to LOAD_MAX_CONCURRENT, sharing one DimensionCache.
//  2. Each table is turned into players with roster.Extract and released
//     immediately; only players are kept.
//  3. The load time for all datasets is recorded, then report.Build runs
//     the statistics for each dataset in configured order.
//
// # Failure Policy
//
// A dataset whose file cannot be read is logged at warn level and reported
// with zero players, so the remaining datasets still print. LOAD_STRICT
// turns that into a run failure. A non-integer age or overall aborts the
// run: statistics over a misaligned column layout would be meaningless.
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages with stable codes by
// [MapError]. See error_messages.go for the code list.
//
// # Concurrency
//
// [BuildLimiter] bounds report builds requested over HTTP so concurrent
// requests cannot each hold three fully materialized tables at once.
package core
