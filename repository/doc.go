// Package repository provides a generic repository abstraction built on Bun
// for CRUD operations, count/find queries and pagination.
package repository
