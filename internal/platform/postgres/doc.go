// Package postgres implements the store persistence port on PostgreSQL
// using database/sql with the pgx driver. Each store binds to a DBTX so the
// same implementation serves both plain reads and transactional mutations;
// row locking (SELECT ... FOR UPDATE) backs the ForUpdate variants that the
// services use to serialize concurrent writers.
package postgres
