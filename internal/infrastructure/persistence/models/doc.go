// Package models contains the GORM persistence models behind the repositories.
// Domain entities stay free of ORM tags; each model converts with
// ToDomain/FromDomain. The SQL files under migrations/ are the source of
// truth for the Postgres schema and must agree with these tags.
package models
