package convert

import (
	"net/url"
	"reflect"
	"strings"
)

type URLConverter struct {
	Base
}

func NewURLConverter(opts ...Option) *URLConverter {
	return &URLConverter{Base: newBase(newOptions(opts...))}
}

func (c *URLConverter) Convert(typ reflect.Type, value any) (any, error) {
	return c.Do(typ, value, c)
}

func (c *URLConverter) DefaultType() reflect.Type {
	return urlType
}

func (c *URLConverter) ConvertToString(value any) (string, error) {
	return toString(value)
}

func (c *URLConverter) ConvertToType(typ reflect.Type, value any) (any, error) {
	if typ != urlType {
		return nil, NewUnsupportedTypeError(typ, reflect.TypeOf(value))
	}
	s, err := toString(value)
	if err != nil {
		return nil, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, NewMissingError(typ)
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, NewParseError(typ, s, err)
	}
	return u, nil
}
