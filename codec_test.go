package efflux

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func testDelimiters(t *testing.T) Delimiters {
	t.Helper()
	return NewDelimiters(NewConfigurationFromEnv(nil))
}

func TestCodecRoundTrip(t *testing.T) {
	codec := NewCodec(testDelimiters(t), false)

	pairs := []Record{
		{Key: "hello", Value: "world"},
		{Key: "hello", Value: ""},
		{Key: "", Value: "value"},
		{Key: "k", Value: "a\tb\tc"},
		{Key: "key with spaces", Value: "value with spaces"},
	}

	for _, pair := range pairs {
		line := codec.Encode(pair.Key, pair.Value)
		rec, err := codec.Decode(line)
		require.NoError(t, err)
		require.Equal(t, pair, rec)
	}
}

func TestCodecDecodeSplitsAtFirstSeparator(t *testing.T) {
	codec := NewCodec(testDelimiters(t), true)

	rec, err := codec.Decode("key\tvalue\twith\ttabs\n")
	require.NoError(t, err)
	require.Equal(t, "key", rec.Key)
	require.Equal(t, "value\twith\ttabs", rec.Value)
}

func TestCodecDecodeWithoutTerminator(t *testing.T) {
	codec := NewCodec(testDelimiters(t), true)

	rec, err := codec.Decode("key\tvalue")
	require.NoError(t, err)
	require.Equal(t, Record{Key: "key", Value: "value"}, rec)
}

func TestCodecDecodeMissingSeparator(t *testing.T) {
	strict := NewCodec(testDelimiters(t), true)
	_, err := strict.Decode("no separator here\n")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMalformedRecord))

	loose := NewCodec(testDelimiters(t), false)
	rec, err := loose.Decode("no separator here\n")
	require.NoError(t, err)
	require.Equal(t, Record{Key: "no separator here"}, rec)
}

func TestCodecDecodeEmbeddedTerminator(t *testing.T) {
	codec := NewCodec(testDelimiters(t), false)

	_, err := codec.Decode("key\tval\nue\n")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMalformedRecord))
}

func TestCodecEncodeEmptyValue(t *testing.T) {
	codec := NewCodec(testDelimiters(t), false)

	require.Equal(t, "key\n", codec.Encode("key", ""))
	require.Equal(t, "key\tvalue\n", codec.Encode("key", "value"))
}
