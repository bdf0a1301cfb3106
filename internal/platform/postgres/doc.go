// Package postgres implements the store interfaces against PostgreSQL
// using database/sql with the pgx stdlib driver.
package postgres
