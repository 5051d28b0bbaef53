package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/ogsmod/modtool/internal/moderation"
	"golang.org/x/text/language"
)

var (
	ErrDecodeDuration = errors.New("failed to decode duration")
	ErrDecodeLanguage = errors.New("failed to decode language tag")
	ErrDecodePowers   = errors.New("failed to decode moderator powers")
)

// decodeDuration parses duration strings (1s, 5m, 1h30m) into a time.Duration.
func decodeDuration() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, target reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || target != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}

		duration, errDuration := time.ParseDuration(data.(string))
		if errDuration != nil {
			return nil, errors.Join(errDuration, fmt.Errorf("%w: %q", ErrDecodeDuration, data))
		}

		return duration, nil
	}
}

// decodeLanguage parses BCP 47 tags such as "de" or "fr-CA".
func decodeLanguage() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, target reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || target != reflect.TypeOf(language.Tag{}) {
			return data, nil
		}

		tag, errTag := language.Parse(data.(string))
		if errTag != nil {
			return nil, errors.Join(errTag, fmt.Errorf("%w: %q", ErrDecodeLanguage, data))
		}

		return tag, nil
	}
}

// decodePowers accepts powers either as a list of names, a comma separated string (env vars) or the raw bits.
func decodePowers() mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, target reflect.Type, data any) (any, error) {
		if target != reflect.TypeOf(moderation.PowerNone) {
			return data, nil
		}

		var names []string

		switch value := data.(type) {
		case string:
			for _, name := range strings.Split(value, ",") {
				if name = strings.TrimSpace(name); name != "" {
					names = append(names, name)
				}
			}
		case []string:
			names = value
		case []any:
			for _, item := range value {
				name, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("%w: %v", ErrDecodePowers, item)
				}

				names = append(names, name)
			}
		default:
			return data, nil
		}

		powers, errPowers := moderation.ParsePowers(names)
		if errPowers != nil {
			return nil, errors.Join(errPowers, ErrDecodePowers)
		}

		return powers, nil
	}
}
