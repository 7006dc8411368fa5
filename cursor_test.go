package confetti

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursor_SkipsBOM(t *testing.T) {
	c := newCursor("\xEF\xBB\xBFkey")
	r, _, err := c.peek()
	require.NoError(t, err)
	require.Equal(t, 'k', r)
}

func TestCursor_TracksLineColumn(t *testing.T) {
	c := newCursor("ab\ncd")
	for i := 0; i < 2; i++ {
		_, err := c.advance()
		require.NoError(t, err)
	}
	require.Equal(t, 1, c.line)
	require.Equal(t, 3, c.column)

	_, err := c.advance() // the newline
	require.NoError(t, err)
	require.Equal(t, 2, c.line)
	require.Equal(t, 1, c.column)
}

func TestCursor_MalformedUTF8(t *testing.T) {
	c := newCursor("ok\xFF")
	_, err := c.advance()
	require.NoError(t, err)
	_, err = c.advance()
	require.NoError(t, err)

	_, err = c.advance()
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, MalformedUtf8, perr.Kind)
}

func TestCursor_LoneSurrogateRejected(t *testing.T) {
	// U+D800 encoded as raw (invalid) UTF-8 bytes ED A0 80.
	c := newCursor("\xED\xA0\x80")
	_, _, err := c.peek()
	require.Error(t, err)
}

func TestCursor_EOF(t *testing.T) {
	c := newCursor("")
	r, size, err := c.peek()
	require.NoError(t, err)
	require.Equal(t, eof, r)
	require.Equal(t, 0, size)
}
