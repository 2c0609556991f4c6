package cli

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolveYAML is a [kong.ConfigurationLoader] for YAML configuration files.
//
// The file is a flat mapping from flag names to values. Keys may use
// hyphens or underscores:
//
//	log-level: debug
//	log_pretty: false
//	backend: starlark
//	module-path: [~/units, /usr/share/litcalc]
//
// Command-line flags override values from the file.
func resolveYAML(r io.Reader) (kong.Resolver, error) {
	var m map[string]any

	if err := yaml.NewDecoder(r).Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return config(m), nil
}

// config implements [kong.Resolver] over a decoded configuration mapping.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	for _, name := range []string{
		flag.Name,
		strings.ReplaceAll(flag.Name, "-", "_"),
	} {
		if v, ok := c[name]; ok {
			return flagValue(v), nil
		}
	}

	return nil, nil
}

// flagValue converts a decoded YAML value into one kong can map. Numbers
// become strings and sequences become comma-separated lists.
func flagValue(v any) any {
	switch v := v.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			s, ok := flagValue(e).(string)
			if !ok {
				s = yamlString(e)
			}

			parts[i] = s
		}

		return strings.Join(parts, ",")
	default:
		return v
	}
}

func yamlString(v any) string {
	out, err := yaml.Marshal(v)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(out))
}
