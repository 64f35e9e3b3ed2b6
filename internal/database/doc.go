// Package database owns the sqlite connection pool and the versioned schema.
//
// # Layout
//
//	database/
//	├── database.go      # Connection setup (DSN, pool, ping, close)
//	├── migrate.go       # golang-migrate wrapper over the embedded SQL files
//	├── migrations/      # 0000NN_*.up.sql / .down.sql
//	└── quotes/          # Repository for authors, quotes, tags and associations
//
// # Usage
//
//	db, err := database.NewDatabase("./quotes.db", logger)
//	repo := quotes.NewRepository(db.DB)
//	quote, err := repo.GetQuote(ctx, 42)
//
// The schema is never created through gorm AutoMigrate; every change goes
// through a numbered migration so that `quotes migrate down` can revert it.
package database
