package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T, ttl time.Duration) *TokenCodec {
	t.Helper()
	codec, err := NewTokenCodec("test-secret", ttl)
	require.NoError(t, err)
	return codec
}

func TestNewTokenCodecRequiresSecret(t *testing.T) {
	_, err := NewTokenCodec("", time.Hour)
	assert.Error(t, err)
}

func TestNewTokenCodecDefaultTTL(t *testing.T) {
	codec, err := NewTokenCodec("secret", 0)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, codec.TTL())
}

func TestIssueAndVerify(t *testing.T) {
	codec := newTestCodec(t, time.Hour)

	token, err := codec.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestVerifyExpiredToken(t *testing.T) {
	codec := newTestCodec(t, time.Hour)
	codec.ttl = -time.Minute

	token, err := codec.Issue(42)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyMalformedToken(t *testing.T) {
	codec := newTestCodec(t, time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := codec.Verify(token)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", token)
	}
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	codec := newTestCodec(t, time.Hour)
	other, err := NewTokenCodec("other-secret", time.Hour)
	require.NoError(t, err)

	token, err := other.Issue(42)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestIssuedTokensAreUnique(t *testing.T) {
	codec := newTestCodec(t, time.Hour)

	first, err := codec.Issue(42)
	require.NoError(t, err)
	second, err := codec.Issue(42)
	require.NoError(t, err)

	// The jti claim makes every token distinct even within one clock tick.
	assert.NotEqual(t, first, second)
}
