// Package models defines the catalog entities for mixdeck.
//
// The package contains two kinds of records:
//
// 1. Reference entities, imported from a music library and read-only to the catalog
//   - [Song] : A single audio track (title, artist, album, duration, tempo)
//
// 2. User-authored entities, created and edited through the catalog service
//   - [Mix] : An ordered pairing of two songs with free-text notes
//   - [MixDetail] : A mix joined with the display fields of both songs
//
// Identifiers are assigned by the store. All types are plain values so they can be copied freely
// between the repository, service, and front-end layers.
package models
