// Package database opens Bun databases for MySQL, PostgreSQL and SQLite,
// loads connection configuration, installs query hooks and classifies driver
// errors for the query layer.
package database
