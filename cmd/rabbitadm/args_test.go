package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/rabbitadm/pkg/admin"
)

func TestParseArguments(t *testing.T) {
	t.Parallel()

	args, err := parseArguments([]string{"x-max-length=10", "x-overflow=drop-head", "x-single-active-consumer=true", "x-note=a=b"})
	require.NoError(t, err)
	require.Len(t, args, 4)

	require.Equal(t, "x-max-length", args[0].key)
	require.Equal(t, admin.Int(10), args[0].value)
	require.Equal(t, admin.String("drop-head"), args[1].value)
	require.Equal(t, admin.Bool(true), args[2].value)
	require.Equal(t, admin.String("a=b"), args[3].value)

	for _, bad := range []string{"", "novalue", "=orphan", "  =x"} {
		_, err := parseArguments([]string{bad})
		require.Error(t, err, bad)
	}
}

func TestFormatTags(t *testing.T) {
	t.Parallel()

	require.Equal(t, "administrator", formatTags("administrator"))
	require.Equal(t, "administrator,monitoring", formatTags([]interface{}{"administrator", "monitoring"}))
	require.Equal(t, "", formatTags(nil))
}
