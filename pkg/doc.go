// Package pkg provides the core libraries for datapeek file inspection.
//
// # Overview
//
// Datapeek answers one question for data files: what is in this file
// and what shape is it. The pkg directory is organized into three main
// areas:
//
//  1. Format readers - one package per file format
//  2. Inspection - kind detection, summarizing, caching
//  3. Storage - the summary cache and the dataset catalog
//
// # Architecture
//
// The typical data flow through datapeek:
//
//	File on disk
//	         ↓
//	    [filekind] package (detect format and compression)
//	         ↓
//	    format package ([csvfile], [jsonfile], [excelfile], ...)
//	         ↓
//	    [inspect] package (summary envelope + cache)
//	         ↓
//	    terminal, JSON, snapshot, or catalog output
//
// # Quick Start
//
// Describe a file with caching:
//
//	import (
//	    "context"
//	    "github.com/datapeek/datapeek/pkg/cache"
//	    "github.com/datapeek/datapeek/pkg/inspect"
//	)
//
//	c, _ := cache.NewFileCache("/tmp/peek-cache")
//	runner := inspect.NewRunner(c, nil, nil, summarizers...)
//	defer runner.Close()
//
//	res, _ := runner.Describe(context.Background(), inspect.Options{Path: "sales.csv"})
//	fmt.Println(res.Summary.Kind, res.CacheHit)
//
// # Main Packages
//
// ## Format Readers
//
// [textfile] - Line-oriented reading and buffered writing of plain text,
// plus head, tail, counts, and word frequencies.
//
// [csvfile] - Delimited files: head as a table and a streaming scan with
// per-column type inference.
//
// [jsonfile], [yamlfile], [tomlfile] - Top-level outlines of config and
// interchange files, pretty-printing, and conversion to JSON.
//
// [xmlfile] - Element-tree outlines with repeated siblings collapsed,
// and reformatting with indentation.
//
// [excelfile] - Workbook sheets, per-sheet head, and CSV export.
//
// [parquetfile] - Schema, stats, and head read from the columnar footer.
//
// [gobfile] - Native snapshot serialization for round-tripping summaries.
//
// [imagefile] - Format, dimensions, and color model without full decode.
//
// ## Inspection
//
// [filekind] - Maps file names and magic bytes to a format kind, and
// detects gzip compression.
//
// [source] - Opens files with transparent gzip decompression and computes
// content fingerprints for cache keys.
//
// [structure] - Shape-of-the-data trees for JSON, YAML, TOML, and XML,
// rendered as DOT, SVG, or PNG diagrams.
//
// [inspect] - The summarizer registry and the Runner that detects,
// summarizes, and caches.
//
// [observability] - Process-wide hooks for counting detections, cache
// hits, and summary timings.
//
// ## Storage
//
// [cache] - Content-addressed summary cache with file, Redis, and no-op
// backends.
//
// [catalog] - Pinned records of described files, stored locally or in
// MongoDB.
//
// ## Shared
//
// [errors] - Coded errors and input validation shared by every package.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/csvfile/...    # Specific package
//
// [textfile]: https://pkg.go.dev/github.com/datapeek/datapeek/pkg/textfile
// [csvfile]: https://pkg.go.dev/github.com/datapeek/datapeek/pkg/csvfile
// [jsonfile]: https://pkg.go.dev/github.com/datapeek/datapeek/pkg/jsonfile
// [yamlfile]: https://pkg.go.dev/github.com/datapeek/datapeek/pkg/yamlfile
// [tomlfile]: https://pkg.go.dev/github.com/datapeek/datapeek/pkg/tomlfile
// [xmlfile]: https://pkg.go.dev/github.com/datapeek/datapeek/pkg/xmlfile
// [excelfile]: https://pkg.go.dev/github.com/datapeek/datapeek/pkg/excelfile
// [parquetfile]: https://pkg.go.dev/github.com/datapeek/datapeek/pkg/parquetfile
// [gobfile]: https://pkg.go.dev/github.com/datapeek/datapeek/pkg/gobfile
// [imagefile]: https://pkg.go.dev/github.com/datapeek/datapeek/pkg/imagefile
// [filekind]: https://pkg.go.dev/github.com/datapeek/datapeek/pkg/filekind
// [source]: https://pkg.go.dev/github.com/datapeek/datapeek/pkg/source
// [structure]: https://pkg.go.dev/github.com/datapeek/datapeek/pkg/structure
// [inspect]: https://pkg.go.dev/github.com/datapeek/datapeek/pkg/inspect
// [observability]: https://pkg.go.dev/github.com/datapeek/datapeek/pkg/observability
// [cache]: https://pkg.go.dev/github.com/datapeek/datapeek/pkg/cache
// [catalog]: https://pkg.go.dev/github.com/datapeek/datapeek/pkg/catalog
// [errors]: https://pkg.go.dev/github.com/datapeek/datapeek/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/datapeek/datapeek/pkg/buildinfo
package pkg
