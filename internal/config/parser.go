package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	adminerrors "github.com/alexisbeaulieu97/rabbitadm/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// ParseSettings loads a settings file from disk, applies environment
// overrides, validates it, and returns the resulting settings.
func ParseSettings(path string) (*Settings, error) {
	return ParseSettingsWithEnv(path, os.LookupEnv)
}

// ParseSettingsWithEnv is ParseSettings with an explicit environment. An
// empty path skips the file and starts from the defaults.
func ParseSettingsWithEnv(path string, lookup LookupFunc) (*Settings, error) {
	settings := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, adminerrors.NewParseError(path, 0, err)
		}

		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, adminerrors.NewParseError(path, extractLine(err), err)
		}
	}

	ApplyEnvironment(&settings, lookup)

	if err := ValidateSettings(&settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// ApplyEnvironment overrides host and credentials from the environment.
// Unset or blank variables leave the current value untouched.
func ApplyEnvironment(settings *Settings, lookup LookupFunc) {
	if settings == nil || lookup == nil {
		return
	}

	override := func(key string, target *string) {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			*target = value
		}
	}

	override(EnvHost, &settings.Host)
	override(EnvUsername, &settings.Credentials.Username)
	override(EnvPassword, &settings.Credentials.Password)
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
