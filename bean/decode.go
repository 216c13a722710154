package bean

import (
	"github.com/go-leo/beanutils/convert"
	"github.com/go-viper/mapstructure/v2"
)

// Decode copies input, usually a map[string]any, into output, a pointer to a
// struct or map. Field names come from the bean tag and values are converted
// through the converter registry.
func (u *Utils) Decode(input any, output any) error {
	if output == nil {
		return ErrNilBean
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: convert.DecodeHook(u.Converters()),
		Result:     output,
		TagName:    u.opts.TagKey,
		Squash:     true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}
