package auth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentials_HeaderIsBasicEncoded(t *testing.T) {
	credentials := NewCredentials("fake-key", "fake-secret")
	header := credentials.Header()

	require.True(t, len(header) > len("Basic "))
	assert.Equal(t, "Basic ", header[:6])

	decoded, err := base64.StdEncoding.DecodeString(header[6:])
	require.NoError(t, err)
	assert.Equal(t, "fake-key:fake-secret", string(decoded))
}

func TestCredentials_AuthorizeRoundTrip(t *testing.T) {
	credentials := NewCredentials("fake-key", "fake-secret")
	assert.True(t, credentials.Authorize(credentials.Header()))
}

func TestCredentials_AuthorizePrefixHandling(t *testing.T) {
	credentials := NewCredentials("fake-key", "fake-secret")
	encoded := base64.StdEncoding.EncodeToString([]byte("fake-key:fake-secret"))

	assert.True(t, credentials.Authorize(encoded), "bare payload without prefix")
	assert.True(t, credentials.Authorize("basic "+encoded), "lowercase prefix")
	assert.True(t, credentials.Authorize("BASIC "+encoded), "uppercase prefix")
}

func TestCredentials_AuthorizeMalformedInput(t *testing.T) {
	credentials := NewCredentials("fake-key", "fake-secret")

	assert.False(t, credentials.Authorize("Basic not-valid-base64!!!"))
	assert.False(t, credentials.Authorize(""))

	noSeparator := base64.StdEncoding.EncodeToString([]byte("fake-key fake-secret"))
	assert.False(t, credentials.Authorize("Basic "+noSeparator))
}

func TestCredentials_AuthorizeRequiresBothPartsToMatch(t *testing.T) {
	credentials := NewCredentials("fake-key", "fake-secret")

	wrongSecret := base64.StdEncoding.EncodeToString([]byte("fake-key:other-secret"))
	assert.False(t, credentials.Authorize("Basic "+wrongSecret))

	wrongKey := base64.StdEncoding.EncodeToString([]byte("other-key:fake-secret"))
	assert.False(t, credentials.Authorize("Basic "+wrongKey))

	bothWrong := base64.StdEncoding.EncodeToString([]byte("other-key:other-secret"))
	assert.False(t, credentials.Authorize("Basic "+bothWrong))
}

func TestCredentials_AuthorizeSecretContainingColon(t *testing.T) {
	credentials := NewCredentials("fake-key", "se:cr:et")
	assert.True(t, credentials.Authorize(credentials.Header()))
}
