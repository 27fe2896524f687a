package http

import (
	"crypto/tls"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_ProcessorConfig(t *testing.T) {
	client := NewHTTPClient(ProcessorClientConfig(), 80*time.Second)

	assert.Equal(t, 80*time.Second, client.Timeout)
	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 50, transport.MaxIdleConnsPerHost)
	assert.Equal(t, uint16(tls.VersionTLS12), transport.TLSClientConfig.MinVersion)
	assert.True(t, transport.ForceAttemptHTTP2)
}

func TestNewHTTPClient_NilConfigUsesDefault(t *testing.T) {
	client := NewHTTPClient(nil, time.Second)

	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, DefaultClientConfig().MaxIdleConnsPerHost, transport.MaxIdleConnsPerHost)
}
