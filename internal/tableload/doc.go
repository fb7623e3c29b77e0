// Package tableload parses delimited text files into random-access tables.
//
// A [Loader] knows nothing about column semantics. It determines a file's
// shape by scanning it once (the measuring pass), allocates a fixed
// rows × columns grid, then scans it again to populate the grid (the
// populating pass). Cells are addressed by 1-based (column, row)
// coordinates; anything out of range reads as the empty string.
//
// # Shape
//
// The row count is the number of lines. The column count is the widest
// line's field count, so short lines leave trailing cells empty:
//
//	a,b,c
//	d
//
// loads as a 3 × 2 table whose (2, 2) and (3, 2) cells are "".
//
// # Splitting
//
// Lines are split by a [Splitter]. The default [CommaSplitter] splits on a
// bare comma with no quoting, escaping, or trimming. [QuotedSplitter]
// honours RFC 4180 quotes within a single line.
//
// # Dimension cache
//
// A [DimensionCache] lets repeated loads of an unchanged file skip the
// measuring pass. Entries are keyed by path, size, and modification time.
// The cache is owned by the Loader and injected with [WithCache].
//
// # Failures
//
// A file that cannot be opened yields a zero-shaped table together with a
// [*LoadFailure]. Content is never validated at this layer.
package tableload
