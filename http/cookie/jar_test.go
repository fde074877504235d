package cookie

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wireparse/wireparse/errors"
)

func TestParse_NotSupported(t *testing.T) {
	jar := NewJar()
	err := Parse(jar, "a=b; c=d")
	require.ErrorIs(t, err, errors.ErrCookiesNotSupported)
	require.True(t, jar.Empty())
}
