// Package myflomo is the Composition Root for the MyFlomo note store.
//
// It connects the core logic (Note Store, content parsing, tag index and
// view derivations) with the storage adapters using the Hexagonal
// Architecture pattern.
//
// A note is a short text entry. Tags are written inline as #tag and derived
// from the content on every save; images are stored content-addressed and
// embedded as ![image](local-image://<hash>). Every mutation rewrites the
// whole collection to storage, and the in-memory state stays authoritative
// when a write fails.
//
// Features:
//
//   - **Hexagonal Architecture**: the core depends on a small key-value port (`core.Storage`).
//   - **Adapters**: directory of JSON files (default), SQLite, or in-memory.
//   - **Live reload**: the fs adapter reports external edits and the store reloads itself.
//   - **Backups**: a single JSON document export, validated all-or-nothing import.
//   - **Views**: tag and glob filters, search, stable date sort, heatmap, stats.
//
// Usage:
//
//	vault, err := myflomo.New("./notes",
//		myflomo.WithAdapter("fs"),
//		myflomo.WithLogger(logger),
//	)
//
//	note, err := vault.Service.Create(ctx, "Buy milk #todo")
package myflomo
