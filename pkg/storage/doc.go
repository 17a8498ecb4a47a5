// Package storage provides persistence for invocation records.
//
// This package includes:
//   - GormStore: a GORM-based core.RecordStore supporting any GORM dialect
//   - OpenSQLite: opens a SQLite database with a pool sized for it
//
// Most users should import the root package
// github.com/jdziat/simple-invocation-wrappers, which re-exports
// NewGormStore.
package storage
