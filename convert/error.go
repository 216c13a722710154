package convert

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrConversion matches every error produced by a converter, see errors.Is.
var ErrConversion = errors.New("convert: conversion failed")

type Code int

const (
	Missing         Code = 1
	Overflow        Code = 2
	NegativeNumber  Code = 3
	FailedParse     Code = 4
	UnsupportedType Code = 5
	Unregistered    Code = 6
)

// Error describes why a value could not be converted to the target type.
type Error struct {
	Code       Code
	TargetType reflect.Type
	SourceType reflect.Type
	Value      string
	err        error
}

func (e Error) Error() string {
	switch e.Code {
	case Missing:
		return fmt.Sprintf("convert: no value specified for type(%s)", typeString(e.TargetType))
	case Overflow:
		return fmt.Sprintf("convert: overflow error, value(%s) -> type(%s)", e.Value, typeString(e.TargetType))
	case NegativeNumber:
		return fmt.Sprintf("convert: negative number error, value(%s) -> type(%s)", e.Value, typeString(e.TargetType))
	case FailedParse:
		return fmt.Sprintf("convert: failed to parse error, value(%s) -> type(%s), %v", e.Value, typeString(e.TargetType), e.err)
	case UnsupportedType:
		return fmt.Sprintf("convert: unsupported type error, type(%s) -> type(%s)", typeString(e.SourceType), typeString(e.TargetType))
	case Unregistered:
		return fmt.Sprintf("convert: no converter registered, type(%s) -> type(%s)", typeString(e.SourceType), typeString(e.TargetType))
	default:
		return fmt.Sprintf("convert: conversion error, type(%s) -> type(%s), %v", typeString(e.SourceType), typeString(e.TargetType), e.err)
	}
}

func (e Error) Unwrap() error {
	return e.err
}

func (e Error) Is(target error) bool {
	return target == ErrConversion
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}

func NewMissingError(tgtType reflect.Type) error {
	return Error{Code: Missing, TargetType: tgtType}
}

func NewOverflowError(tgtType reflect.Type, value string) error {
	return Error{Code: Overflow, TargetType: tgtType, Value: value}
}

func NewNegativeNumberError(tgtType reflect.Type, value string) error {
	return Error{Code: NegativeNumber, TargetType: tgtType, Value: value}
}

func NewParseError(tgtType reflect.Type, value string, err error) error {
	return Error{Code: FailedParse, TargetType: tgtType, Value: value, err: err}
}

func NewUnsupportedTypeError(tgtType reflect.Type, srcType reflect.Type) error {
	return Error{Code: UnsupportedType, TargetType: tgtType, SourceType: srcType}
}

func NewUnregisteredError(tgtType reflect.Type, srcType reflect.Type) error {
	return Error{Code: Unregistered, TargetType: tgtType, SourceType: srcType}
}

// Wrap turns an arbitrary failure into a conversion Error. Errors that are
// already conversion errors are returned unchanged.
func Wrap(tgtType reflect.Type, value any, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrConversion) {
		return err
	}
	return Error{Code: FailedParse, TargetType: tgtType, SourceType: reflect.TypeOf(value), Value: fmt.Sprint(value), err: err}
}
