package main

import (
	"fmt"
	"math/big"
	"net/url"
	"reflect"
	"time"

	"github.com/go-leo/beanutils/convert"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var timeType = reflect.TypeOf(time.Time{})

// typeByName maps the --type names to Go types.
var typeByName = map[string]reflect.Type{
	"bool":      reflect.TypeOf(false),
	"int":       reflect.TypeOf(int(0)),
	"int8":      reflect.TypeOf(int8(0)),
	"int16":     reflect.TypeOf(int16(0)),
	"int32":     reflect.TypeOf(int32(0)),
	"int64":     reflect.TypeOf(int64(0)),
	"uint":      reflect.TypeOf(uint(0)),
	"uint8":     reflect.TypeOf(uint8(0)),
	"uint16":    reflect.TypeOf(uint16(0)),
	"uint32":    reflect.TypeOf(uint32(0)),
	"uint64":    reflect.TypeOf(uint64(0)),
	"float32":   reflect.TypeOf(float32(0)),
	"float64":   reflect.TypeOf(float64(0)),
	"string":    reflect.TypeOf(""),
	"bigint":    reflect.TypeOf((*big.Int)(nil)),
	"decimal":   reflect.TypeOf(decimal.Decimal{}),
	"time":      timeType,
	"duration":  reflect.TypeOf(time.Duration(0)),
	"uuid":      reflect.TypeOf(uuid.UUID{}),
	"url":       reflect.TypeOf((*url.URL)(nil)),
	"rune":      reflect.TypeOf(rune(0)),
	"[]string":  reflect.TypeOf([]string{}),
	"[]int":     reflect.TypeOf([]int{}),
	"[]float64": reflect.TypeOf([]float64{}),
}

func lookupType(name string) (reflect.Type, error) {
	typ, ok := typeByName[name]
	if !ok {
		return nil, fmt.Errorf("unknown type %q, see beanconv types", name)
	}
	return typ, nil
}

func typeNames() []string {
	names := maps.Keys(typeByName)
	slices.Sort(names)
	return names
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the type names accepted by convert --type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range typeNames() {
				registered := "registered"
				if _, ok := convert.Default().Lookup(typeByName[name]); !ok {
					registered = "built on demand"
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-20s %s\n", name, typeByName[name], registered); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
