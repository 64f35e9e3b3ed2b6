// Package importers loads quotes from files into the catalog.
//
// The flow is:
//
//	File → Converter → RawQuote → Pipeline → QuoteCreator.CreateQuote
//
// JSONConverter and YAMLConverter parse a list of records shaped like
//
//	[{"quote": "...", "author_name": "...", "related_tags": ["..."]}]
//
// The legacy key "name" is accepted in place of "author_name". Every record
// goes through CreateQuote, so authors and tags are resolved with the same
// get-or-create rules as the HTTP API.
package importers
