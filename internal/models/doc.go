// Package models defines the domain types shared by the Chinook store, menus, and formatters.
//
// The package contains two categories of types:
//
// 1. Row types: Structs scanned directly from Chinook tables
//   - [Album] : Album row joined with its artist name
//   - [Artist] : Artist row
//   - [ActivityEntry] : Audit record for a committed write
//
// 2. Introspection types: Schema metadata and generic result sets
//   - [Column] : Column description from PRAGMA table_info
//   - [TableDump] : Column names plus stringified rows for any table
//   - [TableCount] : Row count for a single table
//
// [Tables] enumerates the Chinook tables the generic browser may touch.
// Identifiers never reach SQL unless they appear in [Tables] or match a
// column reported by the schema itself.
package models
