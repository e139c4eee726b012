package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// RenderJSON writes res to w as indented JSON. With a profile selected
// only that variant and its signing configuration are written.
func RenderJSON(w io.Writer, res Result) error {
	raw, err := encode(res)
	if err != nil {
		return err
	}

	pretty := gjson.GetBytes(raw, "@pretty").Raw
	_, err = io.WriteString(w, pretty)
	return err
}

// Render writes res in the given format. Options apply to text output.
func Render(w io.Writer, format string, res Result, opts ...Option) error {
	switch format {
	case FormatText, "":
		return RenderText(w, res, opts...)
	case FormatJSON:
		return RenderJSON(w, res)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Query evaluates a gjson path against the JSON form of res and returns
// the match: strings unquoted, everything else as raw JSON.
//
//	Query(res, "variants.release.signingConfig")  // debug
//	Query(res, "app.compileSdk")                  // 34
//	Query(res, "app.plugins.#")                   // 3
func Query(res Result, path string) (string, error) {
	raw, err := encode(res)
	if err != nil {
		return "", err
	}

	v := gjson.GetBytes(raw, path)
	if !v.Exists() {
		return "", fmt.Errorf("%w: %q", ErrPathNotFound, path)
	}
	if v.Type == gjson.String {
		return v.String(), nil
	}
	return v.Raw, nil
}

// encode builds the compact JSON form shared by RenderJSON and Query.
func encode(res Result) ([]byte, error) {
	res = res.redacted()

	var (
		raw []byte
		err error
	)
	if res.Profile != "" {
		v, verr := res.variant()
		if verr != nil {
			return nil, verr
		}
		if raw, err = json.Marshal(v); err != nil {
			return nil, fmt.Errorf("error encoding variant %q: %w", res.Profile, err)
		}
		raw, err = sjson.SetBytes(raw, "profile", res.Profile)
		if err == nil {
			if sc, ok := res.Config.SigningConfigs[v.SigningConfig]; ok {
				raw, err = sjson.SetBytes(raw, "signing", sc)
			}
		}
	} else {
		if raw, err = json.Marshal(res.Config); err != nil {
			return nil, fmt.Errorf("error encoding resolved config: %w", err)
		}
		raw, err = sjson.SetBytes(raw, "profileOrder", res.Config.ProfileOrder)
	}

	if err == nil && len(res.Keystores) > 0 {
		raw, err = sjson.SetBytes(raw, "keystores", res.Keystores)
	}
	if err == nil && res.InvocationID != "" {
		raw, err = sjson.SetBytes(raw, "invocationId", res.InvocationID)
	}
	if err != nil {
		return nil, fmt.Errorf("error building report: %w", err)
	}

	return raw, nil
}
