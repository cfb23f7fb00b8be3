package jsonfix

import "github.com/go-viper/mapstructure/v2"

// ParseOptions parses the given options map into the provided struct.
// String values are converted to the field types, so environment variables
// can be decoded directly.
func ParseOptions[T any](options map[string]any, m *T) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           m,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(options)
}
