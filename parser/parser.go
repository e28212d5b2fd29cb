package parser

import (
	"log"
	"os"

	"github.com/alfmep/libujson"
)

// Options configures a Parser. All limits are zero = unlimited.
type Options struct {
	// AllowDuplicatesInObj retains every (key, value) pair of an object
	// instead of rejecting the second occurrence of a key.
	AllowDuplicatesInObj bool
	// AllowRelaxedFormat enables // and /* */ comments and bare identifier
	// object keys.
	AllowRelaxedFormat bool
	MaxDepth           int
	MaxArraySize       int
	MaxObjectSize      int
	// MaxErrors bounds how many errors are collected before parsing aborts.
	// Zero defaults to 1: fail on the first error unless the caller opts
	// into collecting more.
	MaxErrors int
	// TraceScan/TraceParse, when true, write one line per token/production
	// to Logger (or to a default stderr logger if Logger is nil).
	TraceScan  bool
	TraceParse bool
	Logger     *log.Logger
}

func (o Options) maxErrors() int {
	if o.MaxErrors <= 0 {
		return 1
	}
	return o.MaxErrors
}

// Parser is a recursive-descent parser driven by a Tokenizer. A Parser is
// single-use per call: the caller must serialize calls to its Parse*
// methods.
type Parser struct {
	opts   Options
	tok    *Tokenizer
	cur    Token
	curOK  bool
	errs   []*ParseError
	logger *log.Logger
}

// New returns a Parser configured with opts.
func New(opts Options) *Parser {
	logger := opts.Logger
	if logger == nil && (opts.TraceScan || opts.TraceParse) {
		logger = log.New(os.Stderr, "ujson: ", 0)
	}
	return &Parser{opts: opts, logger: logger}
}

// Errors returns the errors collected by the most recent Parse* call.
func (p *Parser) Errors() []*ParseError { return p.errs }

// ParseString parses s and returns the resulting value tree, or a value of
// Kind Invalid plus the first collected error on failure; Errors returns
// every collected error.
func (p *Parser) ParseString(s string) (ujson.Value, error) {
	return p.ParseBuffer([]byte(s))
}

// ParseFile reads path and parses its contents.
func (p *Parser) ParseFile(path string) (ujson.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		p.errs = []*ParseError{newParseError(0, 0, ErrIO, err.Error())}
		return ujson.Value{}, p.errs[0]
	}
	return p.ParseBuffer(data)
}

// ParseBuffer parses buf (a borrowed byte slice) and returns the resulting
// value tree.
func (p *Parser) ParseBuffer(buf []byte) (ujson.Value, error) {
	p.tok = NewTokenizer(buf, p.opts.AllowRelaxedFormat)
	p.errs = nil
	p.advance()

	v, ok := p.parseValue(0)
	if !ok {
		return ujson.Value{}, p.firstError()
	}
	p.skipTrailingComments()
	if p.curOK {
		p.fail(ErrUnexpectedCharacter, "unexpected trailing content after top-level value")
		return ujson.Value{}, p.firstError()
	}
	if len(p.errs) > 0 {
		return ujson.Value{}, p.firstError()
	}
	return v, nil
}

func (p *Parser) firstError() error {
	if len(p.errs) == 0 {
		return nil
	}
	return p.errs[0]
}

func (p *Parser) skipTrailingComments() {
	// The tokenizer already skips comments/whitespace inside NextToken;
	// nothing left to do here besides checking p.curOK, kept as a named
	// step to mirror the grammar's "value EOF" production.
}

func (p *Parser) advance() {
	tok, ok := p.tok.NextToken()
	p.cur, p.curOK = tok, ok
	if ok && p.opts.TraceScan && p.logger != nil {
		p.logger.Printf("scan: %v %q at %d:%d", tok.Type, tok.Text, tok.Row, tok.Col)
	}
}

func (p *Parser) fail(kind ErrorKind, msg string) {
	row, col := p.cur.Row, p.cur.Col
	if !p.curOK {
		row, col = p.tok.Pos()
	}
	p.errs = append(p.errs, newParseError(row, col, kind, msg))
}

func (p *Parser) failAt(row, col int, kind ErrorKind, msg string) {
	p.errs = append(p.errs, newParseError(row, col, kind, msg))
}

func (p *Parser) maxErrorsReached() bool {
	return len(p.errs) >= p.opts.maxErrors()
}

func (p *Parser) parseValue(depth int) (ujson.Value, bool) {
	if p.opts.MaxDepth > 0 && depth > p.opts.MaxDepth {
		p.fail(ErrMaxDepthExceeded, "maximum nesting depth exceeded")
		return ujson.Value{}, false
	}
	if !p.curOK {
		p.fail(ErrEOB, "unexpected end of buffer, expected a value")
		return ujson.Value{}, false
	}
	if p.opts.TraceParse && p.logger != nil {
		p.logger.Printf("parse: value at %d:%d (%v)", p.cur.Row, p.cur.Col, p.cur.Type)
	}

	switch p.cur.Type {
	case TokenLCBrace:
		return p.parseObject(depth)
	case TokenLBracket:
		return p.parseArray(depth)
	case TokenString:
		v := ujson.String(p.cur.Text)
		p.advance()
		return v, true
	case TokenNumber:
		v := ujson.NumberValue(ujson.NewNumberFromText(p.cur.Text))
		p.advance()
		return v, true
	case TokenTrue:
		p.advance()
		return ujson.Bool(true), true
	case TokenFalse:
		p.advance()
		return ujson.Bool(false), true
	case TokenNull:
		p.advance()
		return ujson.Null(), true
	case TokenInvalid:
		kind := p.cur.Err
		if kind == ErrNone {
			kind = ErrInvalidToken
		}
		p.fail(kind, "invalid token: "+p.cur.Text)
		return ujson.Value{}, false
	default:
		p.fail(ErrUnexpectedCharacter, "unexpected token, expected a value")
		return ujson.Value{}, false
	}
}

func (p *Parser) parseArray(depth int) (ujson.Value, bool) {
	p.advance() // consume '['
	result := ujson.NewArray()
	arr, _ := result.Array()

	if p.curOK && p.cur.Type == TokenRBracket {
		p.advance()
		return result, true
	}

	for {
		if !p.curOK {
			p.fail(ErrUnterminatedArray, "unterminated array")
			return ujson.Value{}, false
		}
		if p.cur.Type == TokenComma {
			p.fail(ErrMisplacedSeparator, "misplaced ',' in array (leading or double separator)")
			if p.maxErrorsReached() {
				return ujson.Value{}, false
			}
			p.advance()
			continue
		}
		v, ok := p.parseValue(depth + 1)
		if !ok {
			if p.maxErrorsReached() {
				return ujson.Value{}, false
			}
		} else {
			arr.Append(v)
			if p.opts.MaxArraySize > 0 && arr.Len() > p.opts.MaxArraySize {
				p.fail(ErrMaxArraySizeExceeded, "maximum array size exceeded")
				return ujson.Value{}, false
			}
		}

		if !p.curOK {
			p.fail(ErrUnterminatedArray, "unterminated array")
			return ujson.Value{}, false
		}
		switch p.cur.Type {
		case TokenComma:
			p.advance()
			if p.curOK && p.cur.Type == TokenRBracket {
				p.fail(ErrMisplacedSeparator, "trailing comma before ']'")
				return ujson.Value{}, false
			}
		case TokenRBracket:
			p.advance()
			return result, true
		default:
			p.fail(ErrExpectedSeparatorOrRightBracket, "expected ',' or ']'")
			return ujson.Value{}, false
		}
	}
}

func (p *Parser) parseObject(depth int) (ujson.Value, bool) {
	p.advance() // consume '{'
	result := ujson.NewObject()
	obj, _ := result.Object()

	if p.curOK && p.cur.Type == TokenRCBrace {
		p.advance()
		return result, true
	}

	for {
		if !p.curOK {
			p.fail(ErrUnterminatedObject, "unterminated object")
			return ujson.Value{}, false
		}
		keyRow, keyCol := p.cur.Row, p.cur.Col
		key, ok := p.parseMemberName()
		if !ok {
			return ujson.Value{}, false
		}

		if !p.curOK || p.cur.Type != TokenColon {
			p.fail(ErrExpectedColon, "expected ':' after object member name")
			return ujson.Value{}, false
		}
		p.advance() // consume ':'

		v, ok := p.parseValue(depth + 1)
		if !ok {
			return ujson.Value{}, false
		}

		if obj.Has(key) && !p.opts.AllowDuplicatesInObj {
			p.failAt(keyRow, keyCol, ErrDuplicateObjMember, "duplicate object member: "+key)
			return ujson.Value{}, false
		}
		obj.Set(key, v)
		if p.opts.MaxObjectSize > 0 && obj.Len() > p.opts.MaxObjectSize {
			p.fail(ErrMaxObjSizeExceeded, "maximum object size exceeded")
			return ujson.Value{}, false
		}

		if !p.curOK {
			p.fail(ErrUnterminatedObject, "unterminated object")
			return ujson.Value{}, false
		}
		switch p.cur.Type {
		case TokenComma:
			p.advance()
			if p.curOK && p.cur.Type == TokenRCBrace {
				p.fail(ErrMisplacedSeparator, "trailing comma before '}'")
				return ujson.Value{}, false
			}
		case TokenRCBrace:
			p.advance()
			return result, true
		default:
			p.fail(ErrExpectedSeparatorOrRightCurlyBracket, "expected ',' or '}'")
			return ujson.Value{}, false
		}
	}
}

func (p *Parser) parseMemberName() (string, bool) {
	if !p.curOK {
		p.fail(ErrExpectedObjMemberName, "expected object member name")
		return "", false
	}
	switch p.cur.Type {
	case TokenString:
		name := p.cur.Text
		p.advance()
		return name, true
	case TokenIdentifier:
		if !p.opts.AllowRelaxedFormat {
			p.fail(ErrExpectedObjMemberName, "bare identifier keys require relaxed mode")
			return "", false
		}
		name := p.cur.Text
		p.advance()
		return name, true
	case TokenRCBrace:
		p.fail(ErrMisplacedRightCurlyBracket, "misplaced '}'")
		return "", false
	default:
		p.fail(ErrExpectedObjMemberName, "expected a string object member name")
		return "", false
	}
}
