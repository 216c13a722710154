package convert_test

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"testing"

	"github.com/go-leo/beanutils/convert"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	err := convert.NewOverflowError(reflect.TypeOf(int8(0)), "300")
	assert.ErrorIs(t, err, convert.ErrConversion)
	assert.Contains(t, err.Error(), "overflow")
	assert.Contains(t, err.Error(), "int8")

	err = convert.NewParseError(intType, "x", strconv.ErrSyntax)
	assert.ErrorIs(t, err, strconv.ErrSyntax)
	assert.ErrorIs(t, err, convert.ErrConversion)

	wrapped := fmt.Errorf("field Age: %w", err)
	assert.ErrorIs(t, wrapped, convert.ErrConversion)

	err = convert.Wrap(intType, "x", errors.New("boom"))
	var convErr convert.Error
	assert.ErrorAs(t, err, &convErr)
	assert.Equal(t, convert.FailedParse, convErr.Code)
	assert.Equal(t, "x", convErr.Value)

	assert.Same(t, wrapped, convert.Wrap(intType, "x", wrapped))
	assert.Nil(t, convert.Wrap(intType, "x", nil))

	err = convert.NewMissingError(nil)
	assert.Contains(t, err.Error(), "nil")
}
