package bean

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	nested       = '.'
	indexedStart = '['
	indexedEnd   = ']'
	mappedStart  = '('
	mappedEnd    = ')'
)

// Resolver splits property expressions such as "orders[0].lines(sku).price"
// into their components.
//
// An expression is a list of segments joined by '.'. Each segment is a
// property name optionally followed by an index "[n]" or a key "(k)". A
// segment may omit the name, "[1]", to index the current value.
type Resolver interface {
	// Next returns the first segment of expression.
	Next(expression string) string
	// Remove returns expression without its first segment, or "" when there
	// is nothing left.
	Remove(expression string) string
	// Property returns the name part of the first segment.
	Property(expression string) string
	// Index returns the index of the first segment, or -1 when it has none.
	Index(expression string) (int, error)
	// Key returns the key of the first segment. The segment must be mapped,
	// see IsMapped.
	Key(expression string) (string, error)
	IsIndexed(expression string) bool
	IsMapped(expression string) bool
	HasNested(expression string) bool
}

// DefaultResolver implements the standard expression syntax. Keys may contain
// '.', '[' and ']'.
type DefaultResolver struct{}

func (DefaultResolver) Next(expression string) string {
	indexed, mapped := false, false
	for i := 0; i < len(expression); i++ {
		c := expression[i]
		switch {
		case indexed:
			if c == indexedEnd {
				return expression[:i+1]
			}
		case mapped:
			if c == mappedEnd {
				return expression[:i+1]
			}
		case c == nested:
			return expression[:i]
		case c == mappedStart:
			mapped = true
		case c == indexedStart:
			indexed = true
		}
	}
	return expression
}

func (r DefaultResolver) Remove(expression string) string {
	next := r.Next(expression)
	if len(next) == len(expression) {
		return ""
	}
	rest := expression[len(next):]
	return strings.TrimPrefix(rest, string(nested))
}

func (DefaultResolver) Property(expression string) string {
	if i := strings.IndexAny(expression, ".[("); i >= 0 {
		return expression[:i]
	}
	return expression
}

func (DefaultResolver) Index(expression string) (int, error) {
	for i := 0; i < len(expression); i++ {
		switch expression[i] {
		case nested, mappedStart:
			return -1, nil
		case indexedStart:
			end := strings.IndexByte(expression[i:], indexedEnd)
			if end < 0 {
				return -1, fmt.Errorf("%w: %q, missing %q", ErrInvalidExpression, expression, indexedEnd)
			}
			value := expression[i+1 : i+end]
			if value == "" {
				return -1, fmt.Errorf("%w: %q, no index value", ErrInvalidExpression, expression)
			}
			index, err := strconv.Atoi(value)
			if err != nil || index < 0 {
				return -1, fmt.Errorf("%w: %q, invalid index %q", ErrInvalidExpression, expression, value)
			}
			return index, nil
		}
	}
	return -1, nil
}

func (DefaultResolver) Key(expression string) (string, error) {
	for i := 0; i < len(expression); i++ {
		switch expression[i] {
		case nested, indexedStart:
			return "", fmt.Errorf("%w: %q is not mapped", ErrInvalidExpression, expression)
		case mappedStart:
			end := strings.IndexByte(expression[i:], mappedEnd)
			if end < 0 {
				return "", fmt.Errorf("%w: %q, missing %q", ErrInvalidExpression, expression, mappedEnd)
			}
			return expression[i+1 : i+end], nil
		}
	}
	return "", fmt.Errorf("%w: %q is not mapped", ErrInvalidExpression, expression)
}

func (DefaultResolver) IsIndexed(expression string) bool {
	for i := 0; i < len(expression); i++ {
		switch expression[i] {
		case nested, mappedStart:
			return false
		case indexedStart:
			return true
		}
	}
	return false
}

func (DefaultResolver) IsMapped(expression string) bool {
	for i := 0; i < len(expression); i++ {
		switch expression[i] {
		case nested, indexedStart:
			return false
		case mappedStart:
			return true
		}
	}
	return false
}

func (r DefaultResolver) HasNested(expression string) bool {
	return r.Remove(expression) != ""
}
