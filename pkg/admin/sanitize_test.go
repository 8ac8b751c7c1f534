package admin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeVirtualHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"/", "%2f"},
		{"prod", "prod"},
		{"team/a", "team%2fa"},
		{"with space", "with%20space"},
		{"q?x", "q%3Fx"},
		{" prod ", "prod"},
		{"%2f", "%2f"},
		{" %2F ", "%2f"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, SanitizeVirtualHost(tt.in), tt.in)
	}
}

func TestIsDefaultVirtualHost(t *testing.T) {
	t.Parallel()

	require.True(t, IsDefaultVirtualHost("/"))
	require.True(t, IsDefaultVirtualHost(" / "))
	require.True(t, IsDefaultVirtualHost("%2f"))
	require.True(t, IsDefaultVirtualHost("%2F"))
	require.False(t, IsDefaultVirtualHost("prod"))
	require.False(t, IsDefaultVirtualHost(""))
}
