package charset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsControl(t *testing.T) {
	for b := 0; b < 32; b++ {
		require.True(t, IsControl(byte(b)))
	}
	require.True(t, IsControl(127))
	require.False(t, IsControl(' '))
	require.False(t, IsControl('A'))
}

func TestIsTSpecial(t *testing.T) {
	for _, b := range []byte("()<>@,;:\\\"/[]?={} \t") {
		require.True(t, IsTSpecial(b), "expected %q to be tspecial", b)
	}
	require.False(t, IsTSpecial('A'))
	require.False(t, IsTSpecial('-'))
}

func TestIsDigit(t *testing.T) {
	for _, b := range []byte("0123456789") {
		require.True(t, IsDigit(b))
	}
	require.False(t, IsDigit('a'))
	require.False(t, IsDigit(' '))
}

func TestIsToken(t *testing.T) {
	require.True(t, IsToken('A'))
	require.True(t, IsToken('-'))
	require.True(t, IsToken('X'))
	require.False(t, IsToken(':'))
	require.False(t, IsToken(' '))
	require.False(t, IsToken('\r'))
	require.False(t, IsToken(0))
}
