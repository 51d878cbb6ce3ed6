package reporting

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "dashed uuid",
			input:    "invalid ACI: 12345678-1234-1234-1234-123456789012",
			expected: "invalid ACI: <uuid>",
		},
		{
			name:     "undashed uuid",
			input:    "invalid ACI: 12345678123412341234123456789012",
			expected: "invalid ACI: <uuid>",
		},
		{
			name:     "quoted username",
			input:    `reserved username "alice.42" has no valid discriminator`,
			expected: `reserved username "<username>" has no valid discriminator`,
		},
		{
			name:     "ipv6 host",
			input:    "dial tcp [::1]:443: connect: connection refused",
			expected: "dial tcp <host>: connect: connection refused",
		},
		{
			name:     "no sensitive content",
			input:    "unexpected status 500 on reservation",
			expected: "unexpected status 500 on reservation",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.expected, sanitizeError(tc.input))
		})
	}
}
