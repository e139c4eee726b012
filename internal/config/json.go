package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the JSON config file.
type StructuredJSONConfig struct {
	Document struct {
		Path               string   `json:"file"`
		Overrides          []string `json:"set"`
		DefaultNDKVersion  string   `json:"default_ndk"`
		Profiles           []string `json:"profiles"`
		SigningConfigsFile string   `json:"signing_configs"`
	} `json:"document,omitempty"`

	Output struct {
		Format  string `json:"format"`
		Profile string `json:"profile"`
	} `json:"output,omitempty"`

	Keystores struct {
		Verify *bool `json:"verify"`
	} `json:"keystores,omitempty"`

	Log struct {
		Level string `json:"level"`
	} `json:"log,omitempty"`

	Watch struct {
		Debounce Duration `json:"debounce"`
	} `json:"watch,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	dec := json.NewDecoder(jsonFile)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Document: Document{
			Path:               jsonCfg.Document.Path,
			Overrides:          jsonCfg.Document.Overrides,
			DefaultNDKVersion:  jsonCfg.Document.DefaultNDKVersion,
			Profiles:           jsonCfg.Document.Profiles,
			SigningConfigsFile: jsonCfg.Document.SigningConfigsFile,
		},
		Output: Output{
			Format:  jsonCfg.Output.Format,
			Profile: jsonCfg.Output.Profile,
		},
		Keystores: Keystores{
			Verify: jsonCfg.Keystores.Verify,
		},
		Log: Log{
			Level: jsonCfg.Log.Level,
		},
		Watch: Watch{
			Debounce: time.Duration(jsonCfg.Watch.Debounce),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
