package remote

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foundationerrors "git.home.luguber.info/inful/remotebuild/internal/foundation/errors"
)

func TestValidateArchitectures(t *testing.T) {
	for _, archs := range [][]string{{"amd64"}, SupportedArchitectures(), nil} {
		assert.NoError(t, ValidateArchitectures(archs), archs)
	}
}

func TestValidateArchitectures_Error(t *testing.T) {
	tests := []struct {
		name     string
		archs    []string
		expected string
		rejected []string
	}{
		{"invalid arch", []string{"unknown"}, "['unknown']", []string{"unknown"}},
		{"valid and invalid archs", []string{"amd64", "unknown"}, "['unknown']", []string{"unknown"}},
		{"multiple invalid archs", []string{"unknown1", "unknown2"}, "['unknown1', 'unknown2']", []string{"unknown1", "unknown2"}},
		{"multiple valid and invalid archs", []string{"unknown1", "unknown2", "riscv64", "arm64"}, "['unknown1', 'unknown2']", []string{"unknown1", "unknown2"}},
		{"duplicates kept as given", []string{"foo", "amd64", "foo"}, "['foo', 'foo']", []string{"foo", "foo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArchitectures(tt.archs)
			require.Error(t, err)
			assert.Contains(t, err.Error(),
				"The following architectures are not supported by the remote builder: "+tt.expected)
			assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryValidation))

			var archErr *UnsupportedArchitectureError
			require.True(t, errors.As(err, &archErr))
			assert.Equal(t, tt.rejected, archErr.Architectures)
		})
	}
}

func TestSupportedArchitectures(t *testing.T) {
	archs := SupportedArchitectures()
	assert.Equal(t, []string{"amd64", "arm64", "armhf", "i386", "ppc64el", "riscv64", "s390x"}, archs)

	// Callers get a copy; the allow-list itself cannot be changed.
	archs[0] = "mips"
	assert.False(t, IsSupportedArchitecture("mips"))
	assert.True(t, IsSupportedArchitecture("amd64"))
}
