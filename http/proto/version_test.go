package proto

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersion_Accumulate(t *testing.T) {
	var v Version
	v = v.AccumulateMajor(1)
	v = v.AccumulateMinor(1)
	require.Equal(t, Version{Major: 1, Minor: 1}, v)
	require.True(t, v.IsHTTP11())
}

func TestVersion_AccumulateMultiDigit(t *testing.T) {
	var v Version
	for _, digit := range []int{2, 5} {
		v = v.AccumulateMajor(digit)
	}

	require.Equal(t, 25, v.Major)
}

func TestVersion_AccumulateSaturates(t *testing.T) {
	v := Version{Major: math.MaxInt}
	v = v.AccumulateMajor(9)
	require.Equal(t, math.MaxInt, v.Major)
}

func TestVersion_String(t *testing.T) {
	require.Equal(t, "HTTP/1.1", Version{Major: 1, Minor: 1}.String())
	require.Equal(t, "HTTP/0.9", Version{Major: 0, Minor: 9}.String())
}
