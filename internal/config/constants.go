package config

const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./quotes.db"

	// DefaultSeedFile is the quotes file loaded by `serve --init`
	DefaultSeedFile = "./static/assets/quotes.json"

	DefaultPageSize = 10
	MaxPageSize     = 100
)
