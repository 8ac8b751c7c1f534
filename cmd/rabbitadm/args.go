package main

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/rabbitadm/pkg/admin"
)

type argument struct {
	key   string
	value admin.Value
}

// parseArguments converts repeated key=value flags into typed values,
// preserving their order so duplicates still reach the registry.
func parseArguments(raw []string) ([]argument, error) {
	args := make([]argument, 0, len(raw))
	for _, entry := range raw {
		key, value, ok := strings.Cut(entry, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("argument %q must have the form key=value", entry)
		}
		args = append(args, argument{key: key, value: admin.ParseValue(value)})
	}
	return args, nil
}

func invalidArgumentsError(operation string, err error) error {
	return newCommandError(operation, "parsing --arg values", err, "Pass arguments as --arg key=value, for example --arg x-max-length=1000.")
}
