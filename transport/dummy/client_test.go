package dummy

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMockConnection(t *testing.T) {
	t.Run("no looping", func(t *testing.T) {
		slices := [][]byte{
			[]byte("Hello"), []byte("world!"),
		}
		conn := NewMockConnection(slices...)

		for _, slice := range slices {
			buf := make([]byte, len(slice))
			n, err := conn.ReadSome(buf)
			require.NoError(t, err)
			require.Equal(t, string(slice), string(buf[:n]))
		}

		_, err := conn.ReadSome(make([]byte, 1))
		require.EqualError(t, err, io.EOF.Error())
	})

	t.Run("looped slices", func(t *testing.T) {
		slices := [][]byte{
			[]byte("Hello"), []byte("world"), []byte("!"),
		}
		conn := NewMockConnection(slices...).LoopReads()

		for i := 0; i < len(slices)*2; i++ {
			want := slices[i%len(slices)]
			buf := make([]byte, len(want))
			n, err := conn.ReadSome(buf)
			require.NoError(t, err)
			require.Equal(t, string(want), string(buf[:n]))
		}
	})
}
