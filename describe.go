package ujson

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Format selects the text representation produced by Value.Describe.
type Format int

const (
	// Compact emits the shortest valid JSON text, no insignificant whitespace.
	Compact Format = iota
	// Pretty emits 4-space-indented JSON with a newline after '{', '[', ','
	// and a space after ':'.
	Pretty
	// Relaxed emits Compact JSON except that object keys matching the
	// identifier grammar [_A-Za-z][_0-9A-Za-z]* are written unquoted. This
	// is the non-standard extension the relaxed parser mode accepts back.
	Relaxed
)

// Describe serializes v to JSON text in the given format.
func Describe(v Value, format Format) string {
	var sb strings.Builder
	writeValue(&sb, v, format, 0)
	return sb.String()
}

func writeValue(sb *strings.Builder, v Value, format Format, depth int) {
	switch v.kind {
	case KindInvalid, KindNull:
		sb.WriteString("null")
	case KindBoolean:
		if v.b {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case KindNumber:
		sb.WriteString(v.num.Text())
	case KindString:
		writeString(sb, v.str)
	case KindArray:
		writeArray(sb, v.arr, format, depth)
	case KindObject:
		writeObject(sb, v.obj, format, depth)
	}
}

func writeArray(sb *strings.Builder, a *Array, format Format, depth int) {
	sb.WriteByte('[')
	if a.Len() == 0 {
		sb.WriteByte(']')
		return
	}
	for i, item := range a.items {
		if i > 0 {
			sb.WriteByte(',')
		}
		if format == Pretty {
			sb.WriteByte('\n')
			writeIndent(sb, depth+1)
		}
		writeValue(sb, item, format, depth+1)
	}
	if format == Pretty {
		sb.WriteByte('\n')
		writeIndent(sb, depth)
	}
	sb.WriteByte(']')
}

func writeObject(sb *strings.Builder, o *Object, format Format, depth int) {
	sb.WriteByte('{')
	if o.Len() == 0 {
		sb.WriteByte('}')
		return
	}
	for i, p := range o.pairs {
		if i > 0 {
			sb.WriteByte(',')
		}
		if format == Pretty {
			sb.WriteByte('\n')
			writeIndent(sb, depth+1)
		}
		writeKey(sb, p.key, format)
		sb.WriteByte(':')
		if format == Pretty {
			sb.WriteByte(' ')
		}
		writeValue(sb, p.val, format, depth+1)
	}
	if format == Pretty {
		sb.WriteByte('\n')
		writeIndent(sb, depth)
	}
	sb.WriteByte('}')
}

func writeIndent(sb *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		sb.WriteString("    ")
	}
}

func writeKey(sb *strings.Builder, key string, format Format) {
	if format == Relaxed && isIdentifier(key) {
		sb.WriteString(key)
		return
	}
	writeString(sb, key)
}

// isIdentifier reports whether s matches the relaxed-mode bare-key grammar
// [_A-Za-z][_0-9A-Za-z]*.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
			continue
		}
		if i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}

func writeString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 || r == utf8.RuneError {
				sb.WriteString(`\u`)
				hex := strconv.FormatInt(int64(r), 16)
				for len(hex) < 4 {
					hex = "0" + hex
				}
				sb.WriteString(hex)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
}
