// Package interfaces documents the core abstractions of the quotes service
// and checks at compile time that the concrete types implement them.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - QuoteStore, TagStore, AuthorStore: catalog reads and writes per controller (internal/http/stores.go)
//   - CatalogCounter: row counts for /health and /metrics (internal/http/stores.go)
//   - Pinger: database reachability (internal/http/stores.go)
//
// All of them are implemented by *quotes.Repository or *database.Database.
//
// ## Background Work
//
//   - TaskQueue: enqueue and inspect cleanup tasks (internal/http/stores.go)
//   - AssociationSweeper: remove dangling quote-tag links (internal/tasks/cleanup_associations.go)
//
// ## Import / Export
//
//   - Converter: turns a source into raw quote records (internal/importers/pipeline.go)
//   - QuoteCreator: persists imported records (internal/importers/pipeline.go)
//   - CatalogExporter: writes the catalog out (internal/exporters/generic.go)
//
// # Adding a New Import Format
//
//  1. Create a converter in internal/importers/
//
//     type CSVConverter struct {
//         Data []byte
//     }
//
//     func (c CSVConverter) Convert() ([]importers.RawQuote, error) {
//         // Parse rows into RawQuote records
//     }
//
//  2. Map its extension in ConverterForFile so `quotes seed --file` picks it up.
//
//  3. Add a check to checks.go:
//
//     var _ importers.Converter = importers.CSVConverter{}
package interfaces
