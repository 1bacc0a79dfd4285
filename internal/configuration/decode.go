package configuration

import (
	"fmt"
	"github.com/mitchellh/mapstructure"
	"reflect"
	"strconv"
	"strings"
)

func decodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		stringToKneesHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// stringToKneesHookFunc allows curve knees to be given as "temp:demand" pairs,
// e.g. "40:5,45:40,55:200", which is the only way to set them from an environment variable.
func stringToKneesHookFunc() mapstructure.DecodeHookFuncType {
	kneesType := reflect.TypeOf([]KneeConfig{})

	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != kneesType {
			return data, nil
		}

		text := strings.TrimSpace(data.(string))
		if len(text) <= 0 {
			return []KneeConfig{}, nil
		}

		var knees []KneeConfig
		for _, pair := range strings.Split(text, ",") {
			parts := strings.Split(strings.TrimSpace(pair), ":")
			if len(parts) != 2 {
				return nil, fmt.Errorf("invalid curve knee '%s', expected <temp>:<demand>", pair)
			}
			temp, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid curve knee temperature '%s': %w", parts[0], err)
			}
			demand, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid curve knee demand '%s': %w", parts[1], err)
			}
			knees = append(knees, KneeConfig{Temp: temp, Demand: demand})
		}
		return knees, nil
	}
}
