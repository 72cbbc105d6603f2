// Package pipeline orchestrates candidate selection, the pooled per-file
// reduction, and batch summary reporting.
//
// Types:
//   - Selection, Entry: what the File Selector found and what it set aside
//   - RunStats: counters, byte totals, elapsed time and failures of one batch
//
// Functions:
//   - Select(root, mode) → *Selection
//     Shallow listing or recursive walk, case-sensitive JPEG suffixes,
//     deterministic order. Missing roots return *PathNotFoundError.
//   - Preview(cfg, log, sel)
//     Lists every entry with its size, the skip list, and (verbose) the
//     planned reduction for each candidate.
//   - Run(ctx, cfg, log, files) → RunStats
//     Fixed pool of workers over a channel of paths; one result line per
//     file; wall-clock timing; failure summary.
//   - WriteReport(path, cfg, stats)
//     YAML summary of one run.
package pipeline
