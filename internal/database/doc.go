// Package database provides PostgreSQL connection pool management for the
// trade journal.
package database
