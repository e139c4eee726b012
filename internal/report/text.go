package report

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/appcfg/internal/validators"
	"github.com/MKhiriev/appcfg/models"
)

type field struct {
	label string
	value string
}

// RenderText writes a human-readable summary of res to w.
func RenderText(w io.Writer, res Result, opts ...Option) error {
	st := newStyles(w, opts)
	res = res.redacted()
	cfg := res.Config

	var b strings.Builder
	if res.Profile != "" {
		v, err := res.variant()
		if err != nil {
			return err
		}

		b.WriteString(st.title.Render(fmt.Sprintf("%s (%s)", v.EffectiveApplicationID(), res.Profile)))
		b.WriteString("\n  " + divider + "\n")
		writeFields(&b, st, variantFields(v))

		if sc, ok := cfg.SigningConfigs[v.SigningConfig]; ok {
			sc.Name = v.SigningConfig
			b.WriteString("\n")
			writeSigningConfigs(&b, st, []models.SigningConfig{sc})
		}
	} else {
		b.WriteString(st.title.Render(cfg.App.ApplicationID))
		b.WriteString("\n  " + divider + "\n")
		writeFields(&b, st, appFields(cfg.App))

		if len(cfg.ProfileOrder) > 0 {
			b.WriteString("\n")
			writeProfileTable(&b, st, cfg)
		}

		if len(cfg.SigningConfigs) > 0 {
			b.WriteString("\n")
			writeSigningConfigs(&b, st, sortedSigningConfigs(cfg.SigningConfigs))
		}
	}

	if len(res.Keystores) > 0 {
		b.WriteString("\n")
		writeKeystores(&b, st, res)
	}

	b.WriteString("  " + divider + "\n")
	b.WriteString("  " + st.ok.Render("OK"))
	if res.InvocationID != "" {
		b.WriteString("  " + st.faint.Render("invocation "+res.InvocationID))
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderError writes a failure message to w. Errors that name a document
// field (validation and keystore failures) are reported with that field.
func RenderError(w io.Writer, err error, opts ...Option) error {
	st := newStyles(w, opts)

	var b strings.Builder
	b.WriteString(st.failure.Render("FAILED"))
	b.WriteString("\n")

	var fieldErr validators.ValidationError
	if errors.As(err, &fieldErr) {
		writeFields(&b, st, []field{
			{"field", fieldErr.Field()},
			{"reason", fieldErr.Error()},
		})
	} else {
		writeFields(&b, st, []field{{"reason", err.Error()}})
	}

	_, werr := io.WriteString(w, b.String())
	return werr
}

func appFields(app models.AppConfig) []field {
	return []field{
		{"namespace", app.Namespace},
		{"applicationId", app.ApplicationID},
		{"compileSdk", strconv.Itoa(app.CompileSDK)},
		{"minSdk", strconv.Itoa(app.MinSDK)},
		{"targetSdk", strconv.Itoa(app.TargetSDK)},
		{"versionCode", strconv.FormatInt(app.VersionCode, 10)},
		{"versionName", app.VersionName},
		{"ndkVersion", app.NDKVersion.OrElse("")},
		{"java", app.CompileOptions.SourceCompatibility + " / " + app.CompileOptions.TargetCompatibility},
		{"desugaring", strconv.FormatBool(app.CompileOptions.CoreLibraryDesugaringEnabled)},
		{"jvmTarget", app.JVMTarget},
		{"flutter", app.FrameworkSource},
		{"plugins", strings.Join(app.Plugins, ", ")},
		{"dependencies", dependencyList(app.Dependencies)},
	}
}

func variantFields(v models.AppConfig) []field {
	fields := appFields(v)
	fields[1].value = v.EffectiveApplicationID()
	fields[6].value = v.EffectiveVersionName()

	return append(fields,
		field{"signingConfig", v.SigningConfig},
		field{"debuggable", strconv.FormatBool(v.Debuggable)},
		field{"minifyEnabled", strconv.FormatBool(v.MinifyEnabled)},
	)
}

func writeFields(b *strings.Builder, st styles, fields []field) {
	width := 0
	for _, f := range fields {
		width = max(width, lipgloss.Width(f.label))
	}

	for _, f := range fields {
		b.WriteString("  ")
		b.WriteString(st.label.Render(fmt.Sprintf("%-*s", width, f.label)))
		b.WriteString("  ")
		b.WriteString(st.value.Render(valueOrDash(f.value)))
		b.WriteString("\n")
	}
}

func writeProfileTable(b *strings.Builder, st styles, cfg models.ResolvedConfig) {
	header := []string{"profile", "applicationId", "versionName", "signing", "debuggable", "minify"}
	rows := make([][]string, 0, len(cfg.ProfileOrder))
	for _, name := range cfg.ProfileOrder {
		v := cfg.Variants[name]
		signing := v.SigningConfig
		if signing == "" {
			signing = "unsigned"
		}
		rows = append(rows, []string{
			name,
			v.EffectiveApplicationID(),
			v.EffectiveVersionName(),
			signing,
			strconv.FormatBool(v.Debuggable),
			strconv.FormatBool(v.MinifyEnabled),
		})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	cells := make([]string, len(header))
	for i, h := range header {
		cells[i] = st.header.Render(fmt.Sprintf("%-*s", widths[i], h))
	}
	b.WriteString("  " + strings.Join(cells, " │ ") + "\n")

	rules := make([]string, len(widths))
	for i, w := range widths {
		rules[i] = strings.Repeat("─", w)
	}
	b.WriteString("  " + strings.Join(rules, "─┼─") + "\n")

	for _, row := range rows {
		for i, cell := range row {
			cells[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		b.WriteString("  " + strings.TrimRight(strings.Join(cells, " │ "), " ") + "\n")
	}
}

func writeSigningConfigs(b *strings.Builder, st styles, configs []models.SigningConfig) {
	b.WriteString("  " + st.title.Render("signing configs") + "\n")
	for _, sc := range configs {
		parts := []string{"storeFile=" + valueOrDash(sc.StoreFile)}
		if sc.StoreType != "" {
			parts = append(parts, "storeType="+sc.StoreType)
		}
		if sc.StorePassword != "" {
			parts = append(parts, "storePassword="+sc.StorePassword)
		}
		if sc.KeyAlias != "" {
			parts = append(parts, "keyAlias="+sc.KeyAlias)
		}
		if sc.KeyPassword != "" {
			parts = append(parts, "keyPassword="+sc.KeyPassword)
		}
		b.WriteString("  " + st.label.Render(sc.Name) + "  " + strings.Join(parts, " ") + "\n")
	}
}

func writeKeystores(b *strings.Builder, st styles, res Result) {
	b.WriteString("  " + st.title.Render("keystores") + "\n")

	fields := make([]field, 0, len(res.Keystores))
	for _, k := range res.Keystores {
		value := k.Path
		switch {
		case k.Fingerprint != "":
			value += " SHA-256 " + k.Fingerprint
		case !k.Inspected:
			value += " (present, not inspected)"
		}
		fields = append(fields, field{k.Name, value})
	}
	writeFields(b, st, fields)
}

func dependencyList(deps []models.Dependency) string {
	out := make([]string, 0, len(deps))
	for _, d := range deps {
		out = append(out, d.Scope+" "+d.Coordinate)
	}
	return strings.Join(out, ", ")
}

func valueOrDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

func sortedSigningConfigs(configs map[string]models.SigningConfig) []models.SigningConfig {
	out := make([]models.SigningConfig, 0, len(configs))
	for _, name := range slices.Sorted(maps.Keys(configs)) {
		sc := configs[name]
		sc.Name = name
		out = append(out, sc)
	}
	return out
}
