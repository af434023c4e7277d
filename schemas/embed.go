// Package schemas embeds the JSON Schemas used to validate generated copy.
package schemas

import _ "embed"

// ShortCopy is the schema for intro hook + CTA responses.
//
//go:embed short_copy.schema.json
var ShortCopy string

// EbookCopy is the schema for ebook landing copy responses.
//
//go:embed ebook_copy.schema.json
var EbookCopy string
