// Package ujson implements a JSON value tree, RFC 6901 pointers, and
// compact/pretty/relaxed serialization. It is the substrate consumed by the
// parser package (which builds a Value tree from text) and the schema
// package (which validates a Value tree against a JSON Schema).
package ujson
