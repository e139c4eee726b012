// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app wires configuration, loading, resolution, verification and
// reporting into the appcfg command and maps the outcome to an exit code.
package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/appcfg/internal/config"
	"github.com/MKhiriev/appcfg/internal/document"
	"github.com/MKhiriev/appcfg/internal/keystore"
	"github.com/MKhiriev/appcfg/internal/logger"
	"github.com/MKhiriev/appcfg/internal/report"
	"github.com/MKhiriev/appcfg/internal/resolver"
	"github.com/MKhiriev/appcfg/internal/utils"
	"github.com/MKhiriev/appcfg/internal/validators"
	"github.com/MKhiriev/appcfg/internal/watcher"
	"github.com/MKhiriev/appcfg/models"
)

// Exit codes returned by [App.Run].
const (
	// ExitOK means the command succeeded.
	ExitOK = 0
	// ExitInvalid means the document failed a validation rule or a signing
	// store failed verification.
	ExitInvalid = 1
	// ExitUsage means the command could not run: bad arguments, unreadable
	// document, unknown query path.
	ExitUsage = 2
)

// App runs one appcfg command.
type App struct {
	cfg       *config.StructuredConfig
	log       *logger.Logger
	loader    document.Loader
	verifier  keystore.Verifier
	buildInfo models.AppBuildInfo
	ids       *utils.UUIDGenerator
	stdout    io.Writer
	stderr    io.Writer

	// Output is rendered into a buffer first, so styles are bound to the
	// real destinations here.
	stdoutRenderer *lipgloss.Renderer
	stderrRenderer *lipgloss.Renderer
}

// Option configures an [App].
type Option func(*App)

// WithLoader replaces the file loader.
func WithLoader(l document.Loader) Option {
	return func(a *App) { a.loader = l }
}

// WithVerifier replaces the keystore verifier. By default stores are
// resolved relative to the document's directory.
func WithVerifier(v keystore.Verifier) Option {
	return func(a *App) { a.verifier = v }
}

// WithBuildInfo sets the metadata printed by the version command.
func WithBuildInfo(info models.AppBuildInfo) Option {
	return func(a *App) { a.buildInfo = info }
}

// WithRenderer styles standard output with r instead of a renderer
// detected from the output writer.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(a *App) { a.stdoutRenderer = r }
}

// WithStderr sets where failures are reported. Defaults to os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(a *App) { a.stderr = w }
}

// NewApp constructs an App for cfg. Output goes to cfg.Output.Writer, or
// os.Stdout when that is nil.
func NewApp(cfg *config.StructuredConfig, log *logger.Logger, opts ...Option) *App {
	a := &App{
		cfg:       cfg,
		log:       log,
		loader:    document.NewFileLoader(),
		buildInfo: models.NewAppBuildInfo("", "", ""),
		ids:       utils.NewUUIDGenerator(),
		stdout:    cfg.Output.Writer,
		stderr:    os.Stderr,
	}
	if a.stdout == nil {
		a.stdout = os.Stdout
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.verifier == nil {
		a.verifier = keystore.NewVerifier(filepath.Dir(cfg.Document.Path))
	}
	if a.stdoutRenderer == nil {
		a.stdoutRenderer = lipgloss.NewRenderer(a.stdout)
	}
	a.stderrRenderer = lipgloss.NewRenderer(a.stderr)

	return a
}

// Run executes the configured command and returns the process exit code.
func (a *App) Run(ctx context.Context) int {
	id := a.ids.Generate()
	log := a.log.WithStr("invocation_id", id)
	ctx = log.WithContext(utils.WithInvocationID(ctx, id))

	log.Debug().
		Str("command", a.cfg.Command).
		Str("document", a.cfg.Document.Path).
		Msg("starting")

	switch a.cfg.Command {
	case config.CommandVersion:
		return a.printVersion(ctx)
	case config.CommandWatch:
		return a.watch(ctx)
	default:
		return a.runOnce(ctx)
	}
}

// printVersion writes the build metadata, as JSON with -format json.
func (a *App) printVersion(ctx context.Context) int {
	out := a.buildInfo.String()
	if a.cfg.Output.Format == report.FormatJSON {
		raw, err := json.Marshal(versionInfo{
			Version: a.buildInfo.BuildVersion(),
			Date:    a.buildInfo.BuildDate(),
			Commit:  a.buildInfo.BuildCommit(),
		})
		if err != nil {
			a.fail(ctx, err)
			return ExitUsage
		}
		out = string(raw) + "\n"
	}

	if _, err := io.WriteString(a.stdout, out); err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg(MsgOutputFailed)
		return ExitUsage
	}
	return ExitOK
}

type versionInfo struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

func (a *App) watch(ctx context.Context) int {
	log := logger.FromContext(ctx)

	w, err := watcher.New(a.cfg.Document.Path, a.cfg.Watch.Debounce)
	if err != nil {
		a.fail(ctx, err)
		return ExitUsage
	}

	log.Info().Str("path", a.cfg.Document.Path).Msg(MsgWatching)
	err = w.Run(ctx, func(ctx context.Context) {
		code := a.runOnce(ctx)
		log.Info().Int("exit_code", code).Msg("document re-resolved")
	})
	if err != nil {
		log.Error().Err(err).Msg(MsgWatchFailed)
		a.fail(ctx, err)
		return ExitUsage
	}

	return ExitOK
}

// runOnce loads, resolves and reports the document once.
func (a *App) runOnce(ctx context.Context) int {
	res, err := a.resolve(ctx)
	if err != nil {
		a.fail(ctx, err)
		return exitCode(err)
	}

	// Render into a buffer so a failed render leaves no partial output.
	var out bytes.Buffer
	switch a.cfg.Command {
	case config.CommandValidate:
		err = a.renderValidate(&out, res)
	case config.CommandQuery:
		var value string
		if value, err = report.Query(res, a.cfg.Args[0]); err == nil {
			_, err = fmt.Fprintln(&out, value)
		}
	default:
		err = report.Render(&out, a.cfg.Output.Format, res, report.WithRenderer(a.stdoutRenderer))
	}
	if err != nil {
		a.fail(ctx, err)
		return ExitUsage
	}

	if _, err := out.WriteTo(a.stdout); err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg(MsgOutputFailed)
		return ExitUsage
	}
	return ExitOK
}

func (a *App) renderValidate(w io.Writer, res report.Result) error {
	if a.cfg.Output.Format == report.FormatJSON {
		return report.RenderJSON(w, res)
	}
	_, err := fmt.Fprintf(w, "%s: %s\n", MsgDocumentValid, a.cfg.Document.Path)
	return err
}

// resolve runs the pipeline: load, defaults, overrides, resolution and, if
// enabled, keystore verification.
func (a *App) resolve(ctx context.Context) (report.Result, error) {
	log := logger.FromContext(ctx)

	doc, err := a.loader.Load(ctx, a.cfg.Document.Path)
	if err != nil {
		log.Error().Err(err).Msg(MsgLoadFailed)
		return report.Result{}, err
	}

	profiles := a.cfg.Document.Profiles
	if len(profiles) == 0 {
		profiles = models.DefaultProfiles
	}

	if doc, err = document.ApplyDefaults(doc, profileDefaults(profiles)); err != nil {
		return report.Result{}, err
	}
	if doc, err = document.ApplyOverrides(doc, a.cfg.Document.Overrides); err != nil {
		log.Error().Err(err).Msg(MsgLoadFailed)
		return report.Result{}, err
	}

	signing, err := loadSigningConfigs(a.cfg.Document.SigningConfigsFile)
	if err != nil {
		log.Error().Err(err).Msg(MsgSigningConfigsFailed)
		return report.Result{}, err
	}

	r := resolver.New(
		resolver.WithProfiles(profiles...),
		resolver.WithSigningConfigs(signing),
		resolver.WithDefaultNDKVersion(a.cfg.Document.DefaultNDKVersion),
	)
	resolved, err := r.Resolve(ctx, doc)
	if err != nil {
		log.Warn().Err(err).Msg(MsgDocumentRejected)
		return report.Result{}, err
	}

	id, _ := utils.GetInvocationIDFromContext(ctx)
	res := report.Result{
		Config:       resolved,
		Profile:      a.cfg.Output.Profile,
		InvocationID: id,
	}

	if a.cfg.Keystores.Enabled() {
		reports, err := a.verifier.Verify(ctx, referencedSigningConfigs(resolved))
		if err != nil {
			log.Warn().Err(err).Msg(MsgDocumentRejected)
			return report.Result{}, err
		}
		res.Keystores = reports
	}

	return res, nil
}

func (a *App) fail(ctx context.Context, err error) {
	if rerr := report.RenderError(a.stderr, err, report.WithRenderer(a.stderrRenderer)); rerr != nil {
		logger.FromContext(ctx).Error().Err(rerr).Msg(MsgOutputFailed)
	}
}

// exitCode maps a pipeline error to an exit code.
func exitCode(err error) int {
	var ksErr *keystore.KeystoreError
	if errors.Is(err, validators.ErrValidation) || errors.As(err, &ksErr) {
		return ExitInvalid
	}
	return ExitUsage
}

// profileDefaults returns the shared defaults restricted to the allowed
// profiles, so defaults never introduce a profile the resolver rejects.
func profileDefaults(allowed []string) models.Document {
	defaults := document.Defaults()
	for name := range defaults.BuildProfiles {
		if !slices.Contains(allowed, name) {
			delete(defaults.BuildProfiles, name)
		}
	}
	return defaults
}

// referencedSigningConfigs returns the signing configurations used by at
// least one variant.
func referencedSigningConfigs(res models.ResolvedConfig) map[string]models.SigningConfig {
	out := make(map[string]models.SigningConfig)
	for _, v := range res.Variants {
		if sc, ok := res.SigningConfigs[v.SigningConfig]; ok {
			out[v.SigningConfig] = sc
		}
	}
	return out
}

// loadSigningConfigs reads a JSON object of named signing configurations.
// An empty path yields no configurations.
func loadSigningConfigs(path string) (map[string]models.SigningConfig, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading signing configs: %w", err)
	}

	var configs map[string]models.SigningConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&configs); err != nil {
		return nil, fmt.Errorf("error decoding signing configs %s: %w", path, err)
	}

	return configs, nil
}
