// Package tasks runs the longer catalog jobs that sit outside the single-statement [services.Catalog] contract.
//
// # Library Import
//
// [LibraryImporter.Import] reads an iTunes/Music "Library.xml" property list and stores each entry
// of its Tracks dictionary as a song:
//   - Name, Artist, Album map to title, artist, album (missing values become "")
//   - Total Time is milliseconds in the library file and is stored as whole seconds
//   - BPM is stored as-is, or 0 when absent
//
// Tracks are inserted in ascending track-ID order, in batches that each run in one transaction.
// Duplicate detection is deliberately absent: importing the same file twice stores every song twice.
//
// # Mix Export
//
// [MixExporter.Export] fetches the mixes matching a song term and renders them with the formatter
// package (csv, markdown, txt, yaml, json).
//
// # Progress Reporting
//
// Both jobs report through an optional channel of [ProgressUpdate]. Sends never block: when the
// channel is full the update is dropped.
package tasks
