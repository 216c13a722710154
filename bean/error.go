package bean

import "errors"

var (
	// ErrNilBean the bean argument is nil
	ErrNilBean = errors.New("bean: bean is nil")

	// ErrInvalidExpression the property expression is malformed
	ErrInvalidExpression = errors.New("bean: invalid property expression")

	// ErrNoSuchProperty the bean has no property with the given name
	ErrNoSuchProperty = errors.New("bean: no such property")

	// ErrNotReadable the property has neither an exported field nor a getter
	ErrNotReadable = errors.New("bean: property is not readable")

	// ErrNotWriteable the property has neither an exported field nor a setter,
	// or the bean is not addressable
	ErrNotWriteable = errors.New("bean: property is not writeable")

	// ErrNilNested a nil value was found in the middle of a nested expression
	ErrNilNested = errors.New("bean: nil value in nested property path")

	// ErrIndexOutOfRange the index is outside the slice or array
	ErrIndexOutOfRange = errors.New("bean: index out of range")

	// ErrNotIndexed the property is not a slice or array
	ErrNotIndexed = errors.New("bean: property is not indexed")

	// ErrNotMapped the property is not a map, or its keys can not be built from a string
	ErrNotMapped = errors.New("bean: property is not mapped")

	// ErrTypeMismatch the value can not be assigned to the property
	ErrTypeMismatch = errors.New("bean: value type does not match property type")
)
