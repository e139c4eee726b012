package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// stringList collects the values of a repeatable flag.
// It implements the flag.Value interface.
type stringList []string

// String returns the collected values joined by commas.
func (l *stringList) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, ",")
}

// Set appends one value.
func (l *stringList) Set(s string) error {
	*l = append(*l, s)
	return nil
}

// commaList is a flag holding a comma-separated list. Empty items are
// dropped. It implements the flag.Value interface.
type commaList []string

func (l *commaList) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, ",")
}

func (l *commaList) Set(s string) error {
	*l = (*l)[:0]
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			*l = append(*l, item)
		}
	}
	if len(*l) == 0 {
		return fmt.Errorf("empty list %q", s)
	}
	return nil
}

// parseFlags parses command-line arguments into a [StructuredConfig].
// Usage and parse errors are written to output.
//
// Flags:
//
//	-f/-file document path (.json, .hcl, .toml)
//	-c/-config json file path with appcfg settings
//	-format output format: text or json
//	-profile print a single build variant
//	-profiles allowed build profile names, comma separated
//	-set path=value override, repeatable
//	-signing-configs json file with extra signing configurations
//	-verify-keystores open every referenced signing store
//	-default-ndk ndk version used when the document has none
//	-log-level zerolog level
//	-debounce watch debounce (e.g. "200ms")
//
// The first positional argument is the command, the rest its arguments.
func parseFlags(args []string, output io.Writer) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("appcfg", flag.ContinueOnError)
	fs.SetOutput(output)

	cfg := &StructuredConfig{}
	var overrides stringList
	var profiles commaList
	var verify bool

	fs.StringVar(&cfg.Document.Path, "f", "", "Document path (.json, .hcl, .toml)")
	fs.StringVar(&cfg.Document.Path, "file", "", "Document path (alias)")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.Output.Format, "format", "", "Output format: text or json")
	fs.StringVar(&cfg.Output.Profile, "profile", "", "Print a single build variant")
	fs.Var(&profiles, "profiles", "Allowed build profiles, comma separated (default release,debug)")
	fs.Var(&overrides, "set", "Override a document value: path=value (repeatable)")
	fs.StringVar(&cfg.Document.SigningConfigsFile, "signing-configs", "", "JSON file with extra signing configurations")
	fs.BoolVar(&verify, "verify-keystores", false, "Open every referenced signing store")
	fs.StringVar(&cfg.Document.DefaultNDKVersion, "default-ndk", "", "NDK version used when the document has none")
	fs.StringVar(&cfg.Log.Level, "log-level", "", "Log level: debug, info, warn, error")
	fs.DurationVar(&cfg.Watch.Debounce, "debounce", 0, "Watch debounce (e.g. 200ms)")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: appcfg [flags] [%s]\n\nFlags:\n", strings.Join([]string{
			CommandValidate, CommandPrint, CommandQuery + " <path>", CommandWatch, CommandVersion,
		}, "|"))
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Document.Overrides = overrides
	cfg.Document.Profiles = profiles
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "verify-keystores" {
			cfg.Keystores.Verify = &verify
		}
	})
	if rest := fs.Args(); len(rest) > 0 {
		cfg.Command = rest[0]
		cfg.Args = rest[1:]
	}

	return cfg, nil
}
