package urlencoded

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wireparse/wireparse/errors"
	"github.com/wireparse/wireparse/kv"
)

func TestDecode(t *testing.T) {
	t.Run("single pair", func(t *testing.T) {
		dst := kv.New()
		require.NoError(t, Decode([]byte("hello=world"), dst))
		require.Equal(t, "world", dst.Value("hello"))
	})

	t.Run("multiple pairs", func(t *testing.T) {
		dst := kv.New()
		require.NoError(t, Decode([]byte("a=1&b=2&c=3"), dst))
		require.Equal(t, "1", dst.Value("a"))
		require.Equal(t, "2", dst.Value("b"))
		require.Equal(t, "3", dst.Value("c"))
	})

	t.Run("flag value defaults to empty", func(t *testing.T) {
		dst := kv.New()
		require.NoError(t, Decode([]byte("flag&key=value"), dst))
		require.Equal(t, "", dst.Value("flag"))
		require.Equal(t, "value", dst.Value("key"))
	})

	t.Run("trailing pair without ampersand is emitted", func(t *testing.T) {
		dst := kv.New()
		require.NoError(t, Decode([]byte("a=1&b=2"), dst))
		require.Equal(t, 2, dst.Len())
	})

	t.Run("empty input yields no pairs", func(t *testing.T) {
		dst := kv.New()
		require.NoError(t, Decode(nil, dst))
		require.True(t, dst.Empty())
	})

	t.Run("empty name at equals fails", func(t *testing.T) {
		require.ErrorIs(t, Decode([]byte("=value"), kv.New()), errors.ErrBadQuery)
	})

	t.Run("empty name at ampersand fails", func(t *testing.T) {
		require.ErrorIs(t, Decode([]byte("&a=1"), kv.New()), errors.ErrBadQuery)
	})

	t.Run("control byte in name fails", func(t *testing.T) {
		require.ErrorIs(t, Decode([]byte("a\x01=1"), kv.New()), errors.ErrBadQuery)
	})

	t.Run("control byte in value fails", func(t *testing.T) {
		require.ErrorIs(t, Decode([]byte("a=1\x01"), kv.New()), errors.ErrBadQuery)
	})

	t.Run("name exceeding cap fails", func(t *testing.T) {
		require.ErrorIs(t, Decode([]byte(strings.Repeat("a", NameMax+1)+"=v"), kv.New()), errors.ErrBadQuery)
	})

	t.Run("value exceeding cap fails", func(t *testing.T) {
		require.ErrorIs(t, Decode([]byte("k="+strings.Repeat("v", ValueMax+1)), kv.New()), errors.ErrBadQuery)
	})

	t.Run("percent escapes are stored literally", func(t *testing.T) {
		dst := kv.New()
		require.NoError(t, Decode([]byte("name=a%20b"), dst))
		require.Equal(t, "a%20b", dst.Value("name"))
	})

	t.Run("round trip preserves insertion order", func(t *testing.T) {
		src := kv.New().Add("a", "1").Add("b", "2").Add("c", "3")
		var encoded strings.Builder
		for i, pair := range src.Expose() {
			if i > 0 {
				encoded.WriteByte('&')
			}
			encoded.WriteString(pair.Key)
			encoded.WriteByte('=')
			encoded.WriteString(pair.Value)
		}

		dst := kv.New()
		require.NoError(t, Decode([]byte(encoded.String()), dst))
		require.Equal(t, src.Expose(), dst.Expose())
	})
}
