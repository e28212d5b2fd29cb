package schema

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"

	ujson "github.com/alfmep/libujson"
	"github.com/alfmep/libujson/parser"
)

// ErrRegexValidation wraps one or more invalid regular expressions found
// while compiling a schema's pattern/patternProperties keywords.
var ErrRegexValidation = errors.New("invalid regular expression in schema")

// RegexPatternError describes a single invalid regex encountered in a
// schema document, identified by the keyword and its location within the
// schema.
type RegexPatternError struct {
	Keyword  string
	Location string
	Pattern  string
	Err      error
}

func (e *RegexPatternError) Error() string {
	return fmt.Sprintf("%s: invalid pattern %q at %s: %v", e.Keyword, e.Pattern, e.Location, e.Err)
}

func (e *RegexPatternError) Unwrap() error { return e.Err }

// knownSchemaFields contains all known JSON Schema keywords.
// Used to filter out known fields when collecting extra/extension fields.
var knownSchemaFields = map[string]struct{}{
	// Core keywords
	"$id":            {},
	"$schema":        {},
	"$ref":           {},
	"$dynamicRef":    {},
	"$anchor":        {},
	"$dynamicAnchor": {},
	"$defs":          {},
	"definitions":    {}, // Draft-7 compatibility
	"$comment":       {},

	// Applicator keywords
	"allOf":                 {},
	"anyOf":                 {},
	"oneOf":                 {},
	"not":                   {},
	"if":                    {},
	"then":                  {},
	"else":                  {},
	"dependentSchemas":      {},
	"prefixItems":           {},
	"items":                 {},
	"additionalItems":       {}, // Draft-7 compatibility
	"contains":              {},
	"properties":            {},
	"patternProperties":     {},
	"additionalProperties":  {},
	"propertyNames":         {},
	"unevaluatedItems":      {},
	"unevaluatedProperties": {},

	// Validation keywords
	"type":              {},
	"enum":              {},
	"const":             {},
	"multipleOf":        {},
	"maximum":           {},
	"exclusiveMaximum":  {},
	"minimum":           {},
	"exclusiveMinimum":  {},
	"maxLength":         {},
	"minLength":         {},
	"pattern":           {},
	"maxItems":          {},
	"minItems":          {},
	"uniqueItems":       {},
	"maxContains":       {},
	"minContains":       {},
	"maxProperties":     {},
	"minProperties":     {},
	"required":          {},
	"dependentRequired": {},

	// Format keyword
	"format": {},

	// Content keywords
	"contentEncoding":  {},
	"contentMediaType": {},
	"contentSchema":    {},

	// Meta-data keywords
	"title":       {},
	"description": {},
	"default":     {},
	"deprecated":  {},
	"readOnly":    {},
	"writeOnly":   {},
	"examples":    {},
}

// Schema represents a JSON Schema as per the 2020-12 draft, containing all
// necessary metadata and validation properties defined by the specification.
//
// A Schema document is itself valid JSON, so it is decoded from a
// ujson.Value tree produced by this module's own parser (see newSchema)
// rather than reflected directly off JSON bytes, and re-encoded the same
// way (see MarshalJSON).
type Schema struct {
	compiledPatterns      map[string]*regexp.Regexp // Cached compiled regular expressions for pattern properties.
	compiler              *Compiler                 // Reference to the associated Compiler instance.
	parent                *Schema                   // Parent schema for hierarchical resolution.
	uri                   string                    // Internal schema identifier resolved during compilation.
	baseURI               string                    // Base URI for resolving relative references within the schema.
	anchors               map[string]*Schema        // Anchors for quick lookup of internal schema references.
	dynamicAnchors        map[string]*Schema        // Dynamic anchors for more flexible schema references.
	schemas               map[string]*Schema        // Cache of compiled schemas.
	compiledStringPattern *regexp.Regexp            // Cached compiled regular expressions for string patterns.

	ID     string  // Public identifier for the schema ($id).
	Schema string  // URI indicating the specification the schema conforms to ($schema).
	Format *string // Format hint for string data, e.g., "email" or "date-time".

	// Schema reference keywords, see https://json-schema.org/draft/2020-12/json-schema-core#ref
	Ref                string             // Reference to another schema ($ref).
	DynamicRef         string             // Reference to another schema that can be dynamically resolved ($dynamicRef).
	Anchor             string             // Anchor for resolving relative JSON Pointers ($anchor).
	DynamicAnchor      string             // Anchor for dynamic resolution ($dynamicAnchor).
	Defs               map[string]*Schema // An object containing schema definitions ($defs).
	ResolvedRef        *Schema            // Resolved schema for $ref.
	ResolvedDynamicRef *Schema            // Resolved schema for $dynamicRef.

	// Boolean JSON Schemas, see https://json-schema.org/draft/2020-12/json-schema-core#name-boolean-json-schemas
	Boolean *bool // Boolean schema, used for quick validation.

	// Applying subschemas with logical keywords, see https://json-schema.org/draft/2020-12/json-schema-core#name-keywords-for-applying-subsch
	AllOf []*Schema // Array of schemas for validating the instance against all of them.
	AnyOf []*Schema // Array of schemas for validating the instance against any of them.
	OneOf []*Schema // Array of schemas for validating the instance against exactly one of them.
	Not   *Schema   // Schema for validating the instance against the negation of it.

	// Applying subschemas conditionally, see https://json-schema.org/draft/2020-12/json-schema-core#name-keywords-for-applying-subsche
	If               *Schema            // Schema to be evaluated as a condition.
	Then             *Schema            // Schema to be evaluated if 'if' is successful.
	Else             *Schema            // Schema to be evaluated if 'if' is not successful.
	DependentSchemas map[string]*Schema // Dependent schemas based on property presence.

	// Applying subschemas to array keywords, see https://json-schema.org/draft/2020-12/json-schema-core#name-keywords-for-applying-subschem
	PrefixItems []*Schema // Array of schemas for validating the array items' prefix.
	Items       *Schema   // Schema for items in an array.
	Contains    *Schema   // Schema for validating items in the array.

	// Applying subschemas to objects keywords, see https://json-schema.org/draft/2020-12/json-schema-core#name-keywords-for-applying-subschemas
	Properties           *SchemaMap // Definitions of properties for object types.
	PatternProperties    *SchemaMap // Definitions of properties for object types matched by specific patterns.
	AdditionalProperties *Schema    // Can be a boolean or a schema, controls additional properties handling.
	PropertyNames        *Schema    // Can be a boolean or a schema, controls property names validation.

	// Any validation keywords, see https://json-schema.org/draft/2020-12/json-schema-validation#section-6.1
	Type  SchemaType    // Can be a single type or an array of types.
	Enum  []ujson.Value // Enumerated values for the property, kept as decoded document values.
	Const *ujson.Value  // Constant value for the property; nil means the keyword is absent.

	// Numeric validation keywords, see https://json-schema.org/draft/2020-12/json-schema-validation#section-6.2
	MultipleOf       *Rat // Number must be a multiple of this value, strictly greater than 0.
	Maximum          *Rat // Maximum value of the number.
	ExclusiveMaximum *Rat // Number must be less than this value.
	Minimum          *Rat // Minimum value of the number.
	ExclusiveMinimum *Rat // Number must be greater than this value.

	// String validation keywords, see https://json-schema.org/draft/2020-12/json-schema-validation#section-6.3
	MaxLength *float64 // Maximum length of a string.
	MinLength *float64 // Minimum length of a string.
	Pattern   *string  // Regular expression pattern to match the string against.

	// Array validation keywords, see https://json-schema.org/draft/2020-12/json-schema-validation#section-6.4
	MaxItems    *float64 // Maximum number of items in an array.
	MinItems    *float64 // Minimum number of items in an array.
	UniqueItems *bool    // Whether the items in the array must be unique.
	MaxContains *float64 // Maximum number of items in the array that can match the contains schema.
	MinContains *float64 // Minimum number of items in the array that must match the contains schema.

	// https://json-schema.org/draft/2020-12/json-schema-core#name-unevaluateditems
	UnevaluatedItems *Schema // Schema for unevaluated items in an array.

	// Object validation keywords, see https://json-schema.org/draft/2020-12/json-schema-validation#section-6.5
	MaxProperties     *float64            // Maximum number of properties in an object.
	MinProperties     *float64            // Minimum number of properties in an object.
	Required          []string            // List of required property names for object types.
	DependentRequired map[string][]string // Properties required when another property is present.

	// https://json-schema.org/draft/2020-12/json-schema-core#name-unevaluatedproperties
	UnevaluatedProperties *Schema // Schema for unevaluated properties in an object.

	// Content validation keywords, see https://json-schema.org/draft/2020-12/json-schema-validation#name-a-vocabulary-for-the-conten
	ContentEncoding  *string // Encoding format of the content.
	ContentMediaType *string // Media type of the content.
	ContentSchema    *Schema // Schema for validating the content.

	// Meta-data for schema and instance description, see https://json-schema.org/draft/2020-12/json-schema-validation#name-a-vocabulary-for-basic-meta
	Title       *string       // A short summary of the schema.
	Description *string       // A detailed description of the purpose of the schema.
	Default     *ujson.Value  // Default value of the instance.
	Deprecated  *bool         // Indicates that the schema is deprecated.
	ReadOnly    *bool         // Indicates that the property is read-only.
	WriteOnly   *bool         // Indicates that the property is write-only.
	Examples    []ujson.Value // Examples of the instance data that validates against this schema.

	// Extra keywords not in specification, kept as decoded document values.
	Extra map[string]ujson.Value
}

// newSchema parses JSON schema text with this module's own parser and
// builds a Schema from the resulting value tree.
func newSchema(jsonSchema []byte) (*Schema, error) {
	v, err := parser.New(parser.Options{}).ParseBuffer(jsonSchema)
	if err != nil {
		return nil, err
	}
	return schemaFromValue(v)
}

// schemaFromValue builds a Schema from a decoded document value, which per
// the core vocabulary is either a boolean schema or an object schema.
func schemaFromValue(v ujson.Value) (*Schema, error) {
	switch v.Kind() {
	case ujson.KindBoolean:
		b, _ := v.Bool()
		return &Schema{Boolean: &b}, nil
	case ujson.KindObject:
		obj, _ := v.Object()
		return schemaFromObject(obj)
	default:
		return nil, ErrInvalidSchemaType
	}
}

func schemaFromObject(obj *ujson.Object) (*Schema, error) {
	s := &Schema{}
	var err error

	if s.ID, _, err = strField(obj, "$id"); err != nil {
		return nil, err
	}
	if s.Schema, _, err = strField(obj, "$schema"); err != nil {
		return nil, err
	}
	if s.Ref, _, err = strField(obj, "$ref"); err != nil {
		return nil, err
	}
	if s.DynamicRef, _, err = strField(obj, "$dynamicRef"); err != nil {
		return nil, err
	}
	if s.Anchor, _, err = strField(obj, "$anchor"); err != nil {
		return nil, err
	}
	if s.DynamicAnchor, _, err = strField(obj, "$dynamicAnchor"); err != nil {
		return nil, err
	}
	if s.Format, err = strPtrField(obj, "format"); err != nil {
		return nil, err
	}

	// $defs, falling back to Draft-7 "definitions" when $defs is absent.
	if s.Defs, err = schemaMapStdField(obj, "$defs"); err != nil {
		return nil, err
	}
	if s.Defs == nil {
		if s.Defs, err = schemaMapStdField(obj, "definitions"); err != nil {
			return nil, err
		}
	}

	if s.AllOf, err = schemaSliceField(obj, "allOf"); err != nil {
		return nil, err
	}
	if s.AnyOf, err = schemaSliceField(obj, "anyOf"); err != nil {
		return nil, err
	}
	if s.OneOf, err = schemaSliceField(obj, "oneOf"); err != nil {
		return nil, err
	}
	if s.Not, err = schemaField(obj, "not"); err != nil {
		return nil, err
	}
	if s.If, err = schemaField(obj, "if"); err != nil {
		return nil, err
	}
	if s.Then, err = schemaField(obj, "then"); err != nil {
		return nil, err
	}
	if s.Else, err = schemaField(obj, "else"); err != nil {
		return nil, err
	}
	if s.DependentSchemas, err = schemaMapStdField(obj, "dependentSchemas"); err != nil {
		return nil, err
	}

	if s.PrefixItems, err = schemaSliceField(obj, "prefixItems"); err != nil {
		return nil, err
	}
	if s.Items, err = schemaField(obj, "items"); err != nil {
		return nil, err
	}
	// Draft-7 compatibility: an array-valued "items" is tuple validation,
	// mapped onto PrefixItems, with "additionalItems" taking over the role
	// "items" plays for the remainder in 2020-12.
	if itemsVal, ok := obj.Get("items"); ok && itemsVal.Kind() == ujson.KindArray {
		prefix, err := schemaSliceFromValue(itemsVal)
		if err != nil {
			return nil, err
		}
		s.PrefixItems = prefix
		s.Items = nil
		if additional, err := schemaField(obj, "additionalItems"); err != nil {
			return nil, err
		} else if additional != nil {
			s.Items = additional
		}
	}
	if s.Contains, err = schemaField(obj, "contains"); err != nil {
		return nil, err
	}

	if s.Properties, err = schemaMapField(obj, "properties"); err != nil {
		return nil, err
	}
	if s.PatternProperties, err = schemaMapField(obj, "patternProperties"); err != nil {
		return nil, err
	}
	if s.AdditionalProperties, err = schemaField(obj, "additionalProperties"); err != nil {
		return nil, err
	}
	if s.PropertyNames, err = schemaField(obj, "propertyNames"); err != nil {
		return nil, err
	}

	if s.Type, err = typeField(obj); err != nil {
		return nil, err
	}
	if v, ok := obj.Get("enum"); ok {
		arr, err := v.Array()
		if err != nil {
			return nil, err
		}
		s.Enum = arr.Slice()
	}
	if v, ok := obj.Get("const"); ok {
		cv := v
		s.Const = &cv
	}

	if s.MultipleOf, err = ratField(obj, "multipleOf"); err != nil {
		return nil, err
	}
	if s.Maximum, err = ratField(obj, "maximum"); err != nil {
		return nil, err
	}
	if s.ExclusiveMaximum, err = ratField(obj, "exclusiveMaximum"); err != nil {
		return nil, err
	}
	if s.Minimum, err = ratField(obj, "minimum"); err != nil {
		return nil, err
	}
	if s.ExclusiveMinimum, err = ratField(obj, "exclusiveMinimum"); err != nil {
		return nil, err
	}

	if s.MaxLength, err = numField(obj, "maxLength"); err != nil {
		return nil, err
	}
	if s.MinLength, err = numField(obj, "minLength"); err != nil {
		return nil, err
	}
	if s.Pattern, err = strPtrField(obj, "pattern"); err != nil {
		return nil, err
	}

	if s.MaxItems, err = numField(obj, "maxItems"); err != nil {
		return nil, err
	}
	if s.MinItems, err = numField(obj, "minItems"); err != nil {
		return nil, err
	}
	if s.UniqueItems, err = boolField(obj, "uniqueItems"); err != nil {
		return nil, err
	}
	if s.MaxContains, err = numField(obj, "maxContains"); err != nil {
		return nil, err
	}
	if s.MinContains, err = numField(obj, "minContains"); err != nil {
		return nil, err
	}
	if s.UnevaluatedItems, err = schemaField(obj, "unevaluatedItems"); err != nil {
		return nil, err
	}

	if s.MaxProperties, err = numField(obj, "maxProperties"); err != nil {
		return nil, err
	}
	if s.MinProperties, err = numField(obj, "minProperties"); err != nil {
		return nil, err
	}
	if s.Required, err = stringSliceField(obj, "required"); err != nil {
		return nil, err
	}
	if s.DependentRequired, err = stringSliceMapField(obj, "dependentRequired"); err != nil {
		return nil, err
	}
	if s.UnevaluatedProperties, err = schemaField(obj, "unevaluatedProperties"); err != nil {
		return nil, err
	}

	if s.ContentEncoding, err = strPtrField(obj, "contentEncoding"); err != nil {
		return nil, err
	}
	if s.ContentMediaType, err = strPtrField(obj, "contentMediaType"); err != nil {
		return nil, err
	}
	if s.ContentSchema, err = schemaField(obj, "contentSchema"); err != nil {
		return nil, err
	}

	if s.Title, err = strPtrField(obj, "title"); err != nil {
		return nil, err
	}
	if s.Description, err = strPtrField(obj, "description"); err != nil {
		return nil, err
	}
	if v, ok := obj.Get("default"); ok {
		dv := v
		s.Default = &dv
	}
	if s.Deprecated, err = boolField(obj, "deprecated"); err != nil {
		return nil, err
	}
	if s.ReadOnly, err = boolField(obj, "readOnly"); err != nil {
		return nil, err
	}
	if s.WriteOnly, err = boolField(obj, "writeOnly"); err != nil {
		return nil, err
	}
	if v, ok := obj.Get("examples"); ok {
		arr, err := v.Array()
		if err != nil {
			return nil, err
		}
		s.Examples = arr.Slice()
	}

	extra := make(map[string]ujson.Value)
	obj.Range(func(key string, val ujson.Value) bool {
		if _, known := knownSchemaFields[key]; !known {
			extra[key] = val
		}
		return true
	})
	if len(extra) > 0 {
		s.Extra = extra
	}

	return s, nil
}

func strField(obj *ujson.Object, key string) (string, bool, error) {
	v, ok := obj.Get(key)
	if !ok {
		return "", false, nil
	}
	s, err := v.Str()
	if err != nil {
		return "", true, err
	}
	return s, true, nil
}

func strPtrField(obj *ujson.Object, key string) (*string, error) {
	s, ok, err := strField(obj, key)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

func boolField(obj *ujson.Object, key string) (*bool, error) {
	v, ok := obj.Get(key)
	if !ok {
		return nil, nil
	}
	b, err := v.Bool()
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func numField(obj *ujson.Object, key string) (*float64, error) {
	v, ok := obj.Get(key)
	if !ok {
		return nil, nil
	}
	n, err := v.Num()
	if err != nil {
		return nil, err
	}
	f := n.Float64()
	return &f, nil
}

func ratField(obj *ujson.Object, key string) (*Rat, error) {
	v, ok := obj.Get(key)
	if !ok {
		return nil, nil
	}
	return NewRatFromValue(v)
}

func schemaField(obj *ujson.Object, key string) (*Schema, error) {
	v, ok := obj.Get(key)
	if !ok {
		return nil, nil
	}
	return schemaFromValue(v)
}

func schemaSliceFromValue(v ujson.Value) ([]*Schema, error) {
	arr, err := v.Array()
	if err != nil {
		return nil, err
	}
	out := make([]*Schema, 0, arr.Len())
	var buildErr error
	arr.Range(func(_ int, item ujson.Value) bool {
		child, err := schemaFromValue(item)
		if err != nil {
			buildErr = err
			return false
		}
		out = append(out, child)
		return true
	})
	if buildErr != nil {
		return nil, buildErr
	}
	return out, nil
}

func schemaSliceField(obj *ujson.Object, key string) ([]*Schema, error) {
	v, ok := obj.Get(key)
	if !ok {
		return nil, nil
	}
	return schemaSliceFromValue(v)
}

// schemaMapField decodes a keyword whose value is an object of subschemas
// into a *SchemaMap (used for properties/patternProperties, which have
// SchemaMap-specific marshaling behavior).
func schemaMapField(obj *ujson.Object, key string) (*SchemaMap, error) {
	m, err := schemaMapStdField(obj, key)
	if err != nil || m == nil {
		return nil, err
	}
	sm := SchemaMap(m)
	return &sm, nil
}

func schemaMapStdField(obj *ujson.Object, key string) (map[string]*Schema, error) {
	v, ok := obj.Get(key)
	if !ok {
		return nil, nil
	}
	child, err := v.Object()
	if err != nil {
		return nil, err
	}
	out := make(map[string]*Schema, child.Len())
	var buildErr error
	child.Range(func(k string, val ujson.Value) bool {
		sub, err := schemaFromValue(val)
		if err != nil {
			buildErr = err
			return false
		}
		out[k] = sub
		return true
	})
	if buildErr != nil {
		return nil, buildErr
	}
	return out, nil
}

func stringSliceField(obj *ujson.Object, key string) ([]string, error) {
	v, ok := obj.Get(key)
	if !ok {
		return nil, nil
	}
	arr, err := v.Array()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, arr.Len())
	var buildErr error
	arr.Range(func(_ int, item ujson.Value) bool {
		s, err := item.Str()
		if err != nil {
			buildErr = err
			return false
		}
		out = append(out, s)
		return true
	})
	if buildErr != nil {
		return nil, buildErr
	}
	return out, nil
}

func stringSliceMapField(obj *ujson.Object, key string) (map[string][]string, error) {
	v, ok := obj.Get(key)
	if !ok {
		return nil, nil
	}
	child, err := v.Object()
	if err != nil {
		return nil, err
	}
	out := make(map[string][]string, child.Len())
	var buildErr error
	child.Range(func(k string, val ujson.Value) bool {
		arr, err := val.Array()
		if err != nil {
			buildErr = err
			return false
		}
		list := make([]string, 0, arr.Len())
		arr.Range(func(_ int, item ujson.Value) bool {
			s, err := item.Str()
			if err != nil {
				buildErr = err
				return false
			}
			list = append(list, s)
			return true
		})
		out[k] = list
		return buildErr == nil
	})
	if buildErr != nil {
		return nil, buildErr
	}
	return out, nil
}

func typeField(obj *ujson.Object) (SchemaType, error) {
	v, ok := obj.Get("type")
	if !ok {
		return nil, nil
	}
	switch v.Kind() {
	case ujson.KindString:
		s, _ := v.Str()
		return SchemaType{s}, nil
	case ujson.KindArray:
		arr, _ := v.Array()
		out := make(SchemaType, 0, arr.Len())
		var buildErr error
		arr.Range(func(_ int, item ujson.Value) bool {
			s, err := item.Str()
			if err != nil {
				buildErr = err
				return false
			}
			out = append(out, s)
			return true
		})
		if buildErr != nil {
			return nil, buildErr
		}
		return out, nil
	default:
		return nil, ErrInvalidSchemaType
	}
}

// initializeSchema sets up the schema structure, resolves URIs, and initializes nested schemas.
// It populates schema properties from the compiler settings and the parent schema context.
func (s *Schema) initializeSchema(compiler *Compiler, parent *Schema) {
	s.initializeSchemaCore(compiler, parent, true)
}

// initializeSchemaWithoutReferences sets up the schema structure without resolving references.
// This is used by CompileBatch to defer reference resolution until all schemas are compiled.
func (s *Schema) initializeSchemaWithoutReferences(compiler *Compiler, parent *Schema) {
	s.initializeSchemaCore(compiler, parent, false)
}

// initializeSchemaCore contains the shared initialization logic.
// When resolveRefs is true, references are resolved immediately after nested schema initialization.
// When resolveRefs is false, reference resolution is deferred (used by CompileBatch).
func (s *Schema) initializeSchemaCore(compiler *Compiler, parent *Schema, resolveRefs bool) {
	// Only set compiler if it's not nil (for constructor usage)
	if compiler != nil {
		s.compiler = compiler
	}
	s.parent = parent

	// Get effective compiler for initialization
	effectiveCompiler := s.GetCompiler()

	parentBaseURI := s.getParentBaseURI()
	if parentBaseURI == "" {
		parentBaseURI = effectiveCompiler.DefaultBaseURI
	}
	if s.ID != "" {
		if isValidURI(s.ID) {
			s.uri = s.ID
			s.baseURI = getBaseURI(s.ID)
		} else {
			resolvedURL := resolveRelativeURI(parentBaseURI, s.ID)
			s.uri = resolvedURL
			s.baseURI = getBaseURI(resolvedURL)
		}
	} else {
		s.baseURI = parentBaseURI
	}

	if s.baseURI == "" {
		if s.uri != "" && isValidURI(s.uri) {
			s.baseURI = getBaseURI(s.uri)
		}
	}

	if s.Anchor != "" {
		s.setAnchor(s.Anchor)
	}

	if s.DynamicAnchor != "" {
		s.setDynamicAnchor(s.DynamicAnchor)
	}

	if s.uri != "" && isValidURI(s.uri) {
		root := s.getRootSchema()
		root.setSchema(s.uri, s)
	}

	// For constructor usage (compiler=nil), don't pass compiler to children
	// They should inherit through parent-child relationship via GetCompiler()
	initializeNestedSchemasCore(s, compiler, resolveRefs)
	if resolveRefs {
		s.resolveReferences()
	}

	// Handle PreserveExtra option
	// If false (default), clear any collected extra fields
	if effectiveCompiler != nil && !effectiveCompiler.PreserveExtra {
		s.Extra = nil
	}
}

// initializeNestedSchemasCore initializes all nested or related schemas as defined in the structure.
// When resolveRefs is true, schemas are initialized with full reference resolution.
// When resolveRefs is false, reference resolution is deferred (used by CompileBatch).
func initializeNestedSchemasCore(s *Schema, compiler *Compiler, resolveRefs bool) {
	initChild := func(child *Schema) {
		child.initializeSchemaCore(compiler, s, resolveRefs)
	}

	if s.Defs != nil {
		for _, def := range s.Defs {
			initChild(def)
		}
	}
	// Initialize logical schema groupings
	for _, schema := range s.AllOf {
		if schema != nil {
			initChild(schema)
		}
	}
	for _, schema := range s.AnyOf {
		if schema != nil {
			initChild(schema)
		}
	}
	for _, schema := range s.OneOf {
		if schema != nil {
			initChild(schema)
		}
	}

	// Initialize conditional schemas
	if s.Not != nil {
		initChild(s.Not)
	}
	if s.If != nil {
		initChild(s.If)
	}
	if s.Then != nil {
		initChild(s.Then)
	}
	if s.Else != nil {
		initChild(s.Else)
	}
	if s.DependentSchemas != nil {
		for _, depSchema := range s.DependentSchemas {
			initChild(depSchema)
		}
	}

	// Initialize array and object schemas
	if s.PrefixItems != nil {
		for _, item := range s.PrefixItems {
			initChild(item)
		}
	}
	if s.Items != nil {
		initChild(s.Items)
	}
	if s.Contains != nil {
		initChild(s.Contains)
	}
	if s.AdditionalProperties != nil {
		initChild(s.AdditionalProperties)
	}
	if s.Properties != nil {
		for _, prop := range *s.Properties {
			initChild(prop)
		}
	}
	if s.PatternProperties != nil {
		for _, prop := range *s.PatternProperties {
			initChild(prop)
		}
	}
	if s.UnevaluatedProperties != nil {
		initChild(s.UnevaluatedProperties)
	}
	if s.UnevaluatedItems != nil {
		initChild(s.UnevaluatedItems)
	}
	if s.ContentSchema != nil {
		initChild(s.ContentSchema)
	}
	if s.PropertyNames != nil {
		initChild(s.PropertyNames)
	}
}

// validateRegexSyntax validates that all regex patterns in the schema are valid Go RE2 syntax.
// It recursively checks pattern and patternProperties in the schema and all nested schemas.
func (s *Schema) validateRegexSyntax() error {
	if s == nil {
		return nil
	}

	visited := make(map[*Schema]bool)
	errs := s.collectRegexErrors(nil, visited)
	if len(errs) == 0 {
		return nil
	}

	combined := append([]error{ErrRegexValidation}, errs...)
	return errors.Join(combined...)
}

// concatTokens returns a new slice containing pathTokens followed by extra,
// without modifying pathTokens.
func concatTokens(pathTokens []string, extra ...string) []string {
	result := make([]string, 0, len(pathTokens)+len(extra))
	result = append(result, pathTokens...)
	result = append(result, extra...)
	return result
}

// collectRegexErrors recursively collects regex compilation errors from the schema tree.
// It uses a token slice to track the JSON Pointer path, avoiding string parsing overhead.
func (s *Schema) collectRegexErrors(pathTokens []string, visited map[*Schema]bool) []error {
	if s == nil || visited[s] {
		return nil
	}
	visited[s] = true

	var errs []error

	// Validate pattern field
	if s.Pattern != nil {
		if err := compilePattern(*s.Pattern); err != nil {
			patternTokens := concatTokens(pathTokens, "pattern")
			errs = append(errs, &RegexPatternError{
				Keyword:  "pattern",
				Location: "#" + ujson.NewPointer(patternTokens...).String(),
				Pattern:  *s.Pattern,
				Err:      err,
			})
		}
	}

	// Validate patternProperties keys and recurse into values
	if s.PatternProperties != nil {
		for pattern, schema := range *s.PatternProperties {
			patternPropTokens := concatTokens(pathTokens, "patternProperties", pattern)
			if err := compilePattern(pattern); err != nil {
				errs = append(errs, &RegexPatternError{
					Keyword:  "patternProperties",
					Location: "#" + ujson.NewPointer(patternPropTokens...).String(),
					Pattern:  pattern,
					Err:      err,
				})
				continue
			}
			errs = append(errs, schema.collectRegexErrors(patternPropTokens, visited)...)
		}
	}

	// Helper to recurse into a single schema
	addSchema := func(child *Schema, token string) {
		if child == nil {
			return
		}
		childTokens := concatTokens(pathTokens, token)
		errs = append(errs, child.collectRegexErrors(childTokens, visited)...)
	}

	// Helper to recurse into a map of schemas
	addSchemaMap := func(m map[string]*Schema, prefix string) {
		if len(m) == 0 {
			return
		}
		for key, schema := range m {
			mapTokens := concatTokens(pathTokens, prefix, key)
			errs = append(errs, schema.collectRegexErrors(mapTokens, visited)...)
		}
	}

	// Helper to recurse into a slice of schemas
	addSchemaSlice := func(children []*Schema, prefix string) {
		if len(children) == 0 {
			return
		}
		for i, child := range children {
			sliceTokens := concatTokens(pathTokens, prefix, strconv.Itoa(i))
			errs = append(errs, child.collectRegexErrors(sliceTokens, visited)...)
		}
	}

	// Recurse into all nested schemas
	if s.Properties != nil {
		addSchemaMap(map[string]*Schema(*s.Properties), "properties")
	}
	if s.Defs != nil {
		addSchemaMap(s.Defs, "$defs")
	}
	if s.DependentSchemas != nil {
		addSchemaMap(s.DependentSchemas, "dependentSchemas")
	}

	addSchema(s.AdditionalProperties, "additionalProperties")
	addSchema(s.UnevaluatedProperties, "unevaluatedProperties")
	addSchema(s.UnevaluatedItems, "unevaluatedItems")
	addSchema(s.PropertyNames, "propertyNames")
	addSchema(s.ContentSchema, "contentSchema")
	addSchema(s.Items, "items")
	addSchema(s.Contains, "contains")
	addSchema(s.Not, "not")
	addSchema(s.If, "if")
	addSchema(s.Then, "then")
	addSchema(s.Else, "else")
	addSchema(s.ResolvedRef, "$ref")
	addSchema(s.ResolvedDynamicRef, "$dynamicRef")

	addSchemaSlice(s.PrefixItems, "prefixItems")
	addSchemaSlice(s.AllOf, "allOf")
	addSchemaSlice(s.AnyOf, "anyOf")
	addSchemaSlice(s.OneOf, "oneOf")

	return errs
}

// compilePattern validates that a regex pattern is valid Go RE2 syntax.
// Returns nil if the pattern is valid, or the regexp compilation error if invalid.
func compilePattern(pattern string) error {
	if pattern == "" {
		return nil
	}
	_, err := regexp.Compile(pattern)
	return err
}

// setAnchor creates or updates the anchor mapping for the current schema and propagates it to parent schemas.
func (s *Schema) setAnchor(anchor string) {
	if s.anchors == nil {
		s.anchors = make(map[string]*Schema)
	}
	s.anchors[anchor] = s

	root := s.getRootSchema()
	if root.anchors == nil {
		root.anchors = make(map[string]*Schema)
	}

	// Only set anchor at root level if it's in the same scope as root
	// If this schema has its own $id that's different from root, it's in a different scope
	if s.ID == "" || s.ID == root.ID {
		if _, ok := root.anchors[anchor]; !ok {
			root.anchors[anchor] = s
		}
	}
}

// setDynamicAnchor sets or updates a dynamic anchor for the current schema and propagates it to parents in the same scope.
func (s *Schema) setDynamicAnchor(anchor string) {
	if s.dynamicAnchors == nil {
		s.dynamicAnchors = make(map[string]*Schema)
	}
	if _, ok := s.dynamicAnchors[anchor]; !ok {
		s.dynamicAnchors[anchor] = s
	}

	scope := s.getScopeSchema()
	if scope.dynamicAnchors == nil {
		scope.dynamicAnchors = make(map[string]*Schema)
	}

	if _, ok := scope.dynamicAnchors[anchor]; !ok {
		scope.dynamicAnchors[anchor] = s
	}
}

// setSchema adds a schema to the internal schema cache, using the provided URI as the key.
func (s *Schema) setSchema(uri string, schema *Schema) *Schema {
	if s.schemas == nil {
		s.schemas = make(map[string]*Schema)
	}

	s.schemas[uri] = schema
	return s
}

func (s *Schema) getSchema(ref string) (*Schema, error) {
	baseURI, anchor := splitRef(ref)

	if schema, exists := s.schemas[baseURI]; exists {
		if baseURI == ref {
			return schema, nil
		}
		return schema.resolveAnchor(anchor)
	}

	return nil, ErrReferenceResolution
}

// GetSchemaURI returns the resolved URI for the schema, or an empty string if no URI is defined.
func (s *Schema) GetSchemaURI() string {
	if s.uri != "" {
		return s.uri
	}
	root := s.getRootSchema()
	if root.uri != "" {
		return root.uri
	}

	return ""
}

// GetSchemaLocation returns the schema location with the given anchor
func (s *Schema) GetSchemaLocation(anchor string) string {
	uri := s.GetSchemaURI()

	return uri + "#" + anchor
}

// getRootSchema returns the highest-level parent schema, serving as the root in the schema tree.
func (s *Schema) getRootSchema() *Schema {
	if s.parent != nil {
		return s.parent.getRootSchema()
	}

	return s
}

func (s *Schema) getScopeSchema() *Schema {
	if s.ID != "" {
		return s
	}
	if s.parent != nil {
		return s.parent.getScopeSchema()
	}

	return s
}

// getParentBaseURI returns the base URI from the nearest parent schema that has one defined,
// or an empty string if none of the parents up to the root define a base URI.
func (s *Schema) getParentBaseURI() string {
	for p := s.parent; p != nil; p = p.parent {
		if p.baseURI != "" {
			return p.baseURI
		}
	}
	return ""
}

// MarshalJSON serializes the schema back to JSON text via this module's own
// value model and describe() writer, rather than reflection-based encoding.
// Map-backed keywords are emitted with sorted keys so repeated marshaling is
// deterministic.
func (s *Schema) MarshalJSON() ([]byte, error) {
	return []byte(ujson.Describe(schemaToValue(s), ujson.Compact)), nil
}

// UnmarshalJSON decodes schema JSON text through this module's own parser,
// mirroring MarshalJSON.
func (s *Schema) UnmarshalJSON(data []byte) error {
	parsed, err := newSchema(data)
	if err != nil {
		return err
	}
	*s = *parsed
	return nil
}

// schemaToValue renders a Schema as the ujson.Value tree it was (or would
// have been) decoded from.
func schemaToValue(s *Schema) ujson.Value {
	if s == nil {
		return ujson.Null()
	}
	if s.Boolean != nil {
		return ujson.Bool(*s.Boolean)
	}

	out := ujson.NewObject()
	obj, _ := out.Object()

	setStr := func(key, val string) {
		if val != "" {
			obj.Set(key, ujson.String(val))
		}
	}
	setStrPtr := func(key string, val *string) {
		if val != nil {
			obj.Set(key, ujson.String(*val))
		}
	}
	setBoolPtr := func(key string, val *bool) {
		if val != nil {
			obj.Set(key, ujson.Bool(*val))
		}
	}
	setNumPtr := func(key string, val *float64) {
		if val != nil {
			obj.Set(key, ujson.Float(*val))
		}
	}
	setRat := func(key string, val *Rat) {
		if val != nil {
			obj.Set(key, ujson.NumberValue(ujson.NewNumberFromText(FormatRat(val))))
		}
	}
	setSchema := func(key string, val *Schema) {
		if val != nil {
			obj.Set(key, schemaToValue(val))
		}
	}
	setSchemaSlice := func(key string, vals []*Schema) {
		if len(vals) == 0 {
			return
		}
		arr := ujson.ArrayOf()
		a, _ := arr.Array()
		for _, v := range vals {
			a.Append(schemaToValue(v))
		}
		obj.Set(key, arr)
	}
	setSchemaMap := func(key string, vals map[string]*Schema) {
		if len(vals) == 0 {
			return
		}
		obj.Set(key, schemaMapToValue(vals))
	}
	setStrSlice := func(key string, vals []string) {
		if len(vals) == 0 {
			return
		}
		arr := ujson.ArrayOf()
		a, _ := arr.Array()
		for _, v := range vals {
			a.Append(ujson.String(v))
		}
		obj.Set(key, arr)
	}

	setStr("$id", s.ID)
	setStr("$schema", s.Schema)
	setStr("$ref", s.Ref)
	setStr("$dynamicRef", s.DynamicRef)
	setStr("$anchor", s.Anchor)
	setStr("$dynamicAnchor", s.DynamicAnchor)
	setStrPtr("format", s.Format)
	setSchemaMap("$defs", s.Defs)

	setSchemaSlice("allOf", s.AllOf)
	setSchemaSlice("anyOf", s.AnyOf)
	setSchemaSlice("oneOf", s.OneOf)
	setSchema("not", s.Not)
	setSchema("if", s.If)
	setSchema("then", s.Then)
	setSchema("else", s.Else)
	setSchemaMap("dependentSchemas", s.DependentSchemas)

	setSchemaSlice("prefixItems", s.PrefixItems)
	setSchema("items", s.Items)
	setSchema("contains", s.Contains)

	if s.Properties != nil {
		setSchemaMap("properties", map[string]*Schema(*s.Properties))
	}
	if s.PatternProperties != nil {
		setSchemaMap("patternProperties", map[string]*Schema(*s.PatternProperties))
	}
	setSchema("additionalProperties", s.AdditionalProperties)
	setSchema("propertyNames", s.PropertyNames)

	if len(s.Type) == 1 {
		obj.Set("type", ujson.String(s.Type[0]))
	} else if len(s.Type) > 1 {
		arr := ujson.ArrayOf()
		a, _ := arr.Array()
		for _, t := range s.Type {
			a.Append(ujson.String(t))
		}
		obj.Set("type", arr)
	}
	if s.Enum != nil {
		obj.Set("enum", ujson.ArrayOf(s.Enum...))
	}
	if s.Const != nil {
		obj.Set("const", *s.Const)
	}

	setRat("multipleOf", s.MultipleOf)
	setRat("maximum", s.Maximum)
	setRat("exclusiveMaximum", s.ExclusiveMaximum)
	setRat("minimum", s.Minimum)
	setRat("exclusiveMinimum", s.ExclusiveMinimum)

	setNumPtr("maxLength", s.MaxLength)
	setNumPtr("minLength", s.MinLength)
	setStrPtr("pattern", s.Pattern)

	setNumPtr("maxItems", s.MaxItems)
	setNumPtr("minItems", s.MinItems)
	setBoolPtr("uniqueItems", s.UniqueItems)
	setNumPtr("maxContains", s.MaxContains)
	setNumPtr("minContains", s.MinContains)
	setSchema("unevaluatedItems", s.UnevaluatedItems)

	setNumPtr("maxProperties", s.MaxProperties)
	setNumPtr("minProperties", s.MinProperties)
	setStrSlice("required", s.Required)
	if len(s.DependentRequired) > 0 {
		dr := ujson.NewObject()
		dro, _ := dr.Object()
		for _, k := range sortedKeys(s.DependentRequired) {
			arr := ujson.ArrayOf()
			a, _ := arr.Array()
			for _, req := range s.DependentRequired[k] {
				a.Append(ujson.String(req))
			}
			dro.Set(k, arr)
		}
		obj.Set("dependentRequired", dr)
	}
	setSchema("unevaluatedProperties", s.UnevaluatedProperties)

	setStrPtr("contentEncoding", s.ContentEncoding)
	setStrPtr("contentMediaType", s.ContentMediaType)
	setSchema("contentSchema", s.ContentSchema)

	setStrPtr("title", s.Title)
	setStrPtr("description", s.Description)
	if s.Default != nil {
		obj.Set("default", *s.Default)
	}
	setBoolPtr("deprecated", s.Deprecated)
	setBoolPtr("readOnly", s.ReadOnly)
	setBoolPtr("writeOnly", s.WriteOnly)
	if s.Examples != nil {
		obj.Set("examples", ujson.ArrayOf(s.Examples...))
	}

	for _, k := range sortedKeys(s.Extra) {
		obj.Set(k, s.Extra[k])
	}

	return out
}

// schemaMapToValue renders a map of subschemas with its keys sorted, so
// repeated marshaling of the same schema yields byte-identical output.
func schemaMapToValue(vals map[string]*Schema) ujson.Value {
	mv := ujson.NewObject()
	mo, _ := mv.Object()
	for _, k := range sortedKeys(vals) {
		mo.Set(k, schemaToValue(vals[k]))
	}
	return mv
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// SchemaMap represents a map of string keys to *Schema values, used primarily for properties and patternProperties.
type SchemaMap map[string]*Schema

// MarshalJSON serializes the map with sorted keys, matching Schema's own
// deterministic marshaling.
func (m SchemaMap) MarshalJSON() ([]byte, error) {
	return []byte(ujson.Describe(schemaMapToValue(m), ujson.Compact)), nil
}

// SchemaType holds a set of SchemaType values, accommodating complex schema definitions that permit multiple types.
type SchemaType []string

// SetCompiler sets a custom Compiler for the Schema and returns the Schema itself to support method chaining
func (s *Schema) SetCompiler(compiler *Compiler) *Schema {
	s.compiler = compiler
	return s
}

// GetCompiler gets the effective Compiler for the Schema
// Lookup order: current Schema -> parent Schema -> defaultCompiler
func (s *Schema) GetCompiler() *Compiler {
	if s.compiler != nil {
		return s.compiler
	}

	// Look up parent Schema's compiler
	if s.parent != nil {
		return s.parent.GetCompiler()
	}

	return defaultCompiler
}
