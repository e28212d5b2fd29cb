// Package schema implements a JSON Schema Draft 2020-12 validator built on
// top of this module's own ujson value model and parser, instead of
// encoding/json: a compiled Schema validates a ujson.Value instance
// directly, so schema documents and the data they validate share one
// substrate.
//
// Credit to https://github.com/santhosh-tekuri/jsonschema for format validators.
package schema
