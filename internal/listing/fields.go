package listing

import (
	"fmt"
	"strconv"
	"strings"

	"bootcamp_directory_backend/platform/apperr"
)

// Kind describes how a filter value is parsed before it is bound as a
// query argument.
type Kind int

const (
	// Text values are bound as-is.
	Text Kind = iota
	// Int values must parse as base-10 integers.
	Int
	// Float values must parse as decimal numbers.
	Float
	// Bool values must parse as booleans.
	Bool
)

// Field maps an API field name onto a database column. Only fields
// declared here can be filtered, selected, or sorted on; arbitrary
// query-string keys never reach the SQL layer.
type Field struct {
	// Column is the database column, optionally qualified (e.g. "b.name").
	Column string
	// Kind controls value parsing for comparison operators.
	Kind Kind
	// Array marks text[] columns; the in operator becomes an overlap test.
	Array bool
}

// Fields is the per-resource allow-list of filterable fields.
type Fields map[string]Field

// comparison operators accepted in field[op]=value query keys.
var operators = map[string]string{
	"gt":  ">",
	"gte": ">=",
	"lt":  "<",
	"lte": "<=",
}

// Condition is one SQL predicate with exactly one bound argument.
// The format string contains a single $%d verb; the assembler numbers
// placeholders once it knows the full condition set.
type Condition struct {
	Format string
	Arg    interface{}
}

// NewCondition builds a scope condition supplied by a repository
// (e.g. "bootcamp_id = $%d" to list one bootcamp's courses).
func NewCondition(format string, arg interface{}) Condition {
	return Condition{Format: format, Arg: arg}
}

// translate converts a single query key/value pair into a Condition.
func (f Fields) translate(key, value string) (Condition, error) {
	name, op := splitKey(key)

	field, ok := f[name]
	if !ok {
		return Condition{}, apperr.BadRequest(fmt.Sprintf("cannot filter on field %q", name))
	}

	switch op {
	case "":
		arg, err := parseValue(field.Kind, value)
		if err != nil {
			return Condition{}, apperr.BadRequest(fmt.Sprintf("invalid value for field %q", name))
		}
		return Condition{Format: field.Column + " = $%d", Arg: arg}, nil

	case "in":
		arg, err := parseList(field.Kind, value)
		if err != nil {
			return Condition{}, apperr.BadRequest(fmt.Sprintf("invalid value for field %q", name))
		}
		if field.Array {
			// text[] column: match when any requested value is present.
			return Condition{Format: field.Column + " && $%d", Arg: arg}, nil
		}
		return Condition{Format: field.Column + " = ANY($%d)", Arg: arg}, nil

	default:
		sqlOp, ok := operators[op]
		if !ok {
			return Condition{}, apperr.BadRequest(fmt.Sprintf("unknown operator %q", op))
		}
		arg, err := parseValue(field.Kind, value)
		if err != nil {
			return Condition{}, apperr.BadRequest(fmt.Sprintf("invalid value for field %q", name))
		}
		return Condition{Format: fmt.Sprintf("%s %s $%%d", field.Column, sqlOp), Arg: arg}, nil
	}
}

// splitKey breaks "tuition[lte]" into ("tuition", "lte").
// A bare key has an empty operator.
func splitKey(key string) (name, op string) {
	open := strings.IndexByte(key, '[')
	if open < 0 || !strings.HasSuffix(key, "]") {
		return key, ""
	}
	return key[:open], key[open+1 : len(key)-1]
}

func parseValue(kind Kind, value string) (interface{}, error) {
	switch kind {
	case Int:
		return strconv.ParseInt(value, 10, 64)
	case Float:
		return strconv.ParseFloat(value, 64)
	case Bool:
		return strconv.ParseBool(value)
	default:
		return value, nil
	}
}

// parseList splits a comma-separated in-list and parses every element.
// The return types match what pgx binds for = ANY / && operators.
func parseList(kind Kind, value string) (interface{}, error) {
	parts := strings.Split(value, ",")

	switch kind {
	case Int:
		out := make([]int64, 0, len(parts))
		for _, p := range parts {
			v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case Float:
		out := make([]float64, 0, len(parts))
		for _, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case Bool:
		out := make([]bool, 0, len(parts))
		for _, p := range parts {
			v, err := strconv.ParseBool(strings.TrimSpace(p))
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	default:
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			out = append(out, strings.TrimSpace(p))
		}
		return out, nil
	}
}
