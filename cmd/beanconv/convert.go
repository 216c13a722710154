package main

import (
	"fmt"
	"reflect"

	"github.com/go-leo/beanutils/convert"
	"github.com/go-leo/beanutils/locale"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type convertOptions struct {
	typeName string
	locale   string
	pattern  string
}

func newConvertCmd() *cobra.Command {
	opts := &convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert VALUE...",
		Short: "Convert values to a Go type",
		Long: `Converts one value, or several into a slice, to the type named by --type.
With --locale or --pattern the value is parsed by the locale registry.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runConvert(opts, args)
			if err != nil {
				return err
			}
			out, err := render(result)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVarP(&opts.typeName, "type", "t", "string", "target type")
	cmd.Flags().StringVarP(&opts.locale, "locale", "l", "", "locale of the input, e.g. de-DE")
	cmd.Flags().StringVarP(&opts.pattern, "pattern", "p", "", "number or date pattern of the input")
	return cmd
}

func runConvert(opts *convertOptions, args []string) (any, error) {
	typ, err := lookupType(opts.typeName)
	if err != nil {
		return nil, err
	}
	zap.L().Debug("beanconv: convert",
		zap.Stringer("type", typ),
		zap.Strings("values", args),
		zap.String("locale", opts.locale),
		zap.String("pattern", opts.pattern))

	if opts.typeName == "rune" {
		c := convert.NewCharacterConverter()
		if len(args) == 1 {
			return c.Convert(typ, args[0])
		}
		return convert.NewArrayConverter(reflect.SliceOf(typ), c).Convert(reflect.SliceOf(typ), args)
	}

	if opts.locale == "" && opts.pattern == "" {
		if len(args) == 1 {
			return convert.ConvertString(args[0], typ)
		}
		return convert.ConvertStrings(args, typ)
	}

	var l locale.Locale
	if opts.locale != "" {
		if l, err = locale.ParseLocale(opts.locale); err != nil {
			return nil, err
		}
	}
	if len(args) == 1 {
		return locale.ConvertIn(l, args[0], typ, opts.pattern)
	}
	return locale.Default().ConvertStringsIn(l, args, typ, opts.pattern)
}

// render prints scalars the way the converters format them and composite
// values as JSON.
func render(result any) (string, error) {
	if result == nil {
		return "", nil
	}
	switch reflect.ValueOf(result).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct:
		if _, ok := result.(fmt.Stringer); !ok {
			return jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString(result)
		}
	}
	if r, ok := result.(rune); ok {
		return string(r), nil
	}
	return convert.Format(result)
}
