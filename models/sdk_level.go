package models

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"strconv"
	"strings"
)

// SDKLevel is a platform API level. Documents may spell it as an integer
// or as a platform codename ("L", "O-MR1", "Tiramisu").
type SDKLevel int

// apiLevels maps platform codenames to their API level.
var apiLevels = map[string]SDKLevel{
	"G":               9,
	"I":               14,
	"J":               16,
	"J-MR1":           17,
	"J-MR2":           18,
	"K":               19,
	"L":               21,
	"L-MR1":           22,
	"M":               23,
	"N":               24,
	"N-MR1":           25,
	"O":               26,
	"O-MR1":           27,
	"P":               28,
	"Q":               29,
	"R":               30,
	"S":               31,
	"S-V2":            32,
	"Tiramisu":        33,
	"UpsideDownCake":  34,
	"VanillaIceCream": 35,
	"Baklava":         36,
}

// APILevels returns a copy of the codename to API level table.
func APILevels() map[string]SDKLevel {
	return maps.Clone(apiLevels)
}

// ParseSDKLevel parses an integer API level or a platform codename.
func ParseSDKLevel(s string) (SDKLevel, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return SDKLevel(n), nil
	}
	if lvl, ok := apiLevels[s]; ok {
		return lvl, nil
	}

	return 0, fmt.Errorf("unknown sdk level %q", s)
}

// UnmarshalJSON accepts a JSON number or a codename string.
func (l *SDKLevel) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		if value != math.Trunc(value) || value < math.MinInt32 || value > math.MaxInt32 {
			return fmt.Errorf("sdk level must be a whole number, got %s", string(b))
		}
		*l = SDKLevel(value)
		return nil
	case string:
		lvl, err := ParseSDKLevel(value)
		if err != nil {
			return err
		}
		*l = lvl
		return nil
	case nil:
		*l = 0
		return nil
	default:
		return fmt.Errorf("sdk level must be a number or codename, got %s", string(b))
	}
}

// UnmarshalTOML implements toml.Unmarshaler.
func (l *SDKLevel) UnmarshalTOML(v any) error {
	switch value := v.(type) {
	case int64:
		*l = SDKLevel(value)
		return nil
	case string:
		lvl, err := ParseSDKLevel(value)
		if err != nil {
			return err
		}
		*l = lvl
		return nil
	default:
		return fmt.Errorf("sdk level must be an integer or codename, got %v", v)
	}
}
