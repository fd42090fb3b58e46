package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPTransportBindsConfiguredHost(t *testing.T) {
	assert.Equal(t, "127.0.0.1:9090", NewHTTPTransport("127.0.0.1", 9090).Addr())
	assert.Equal(t, "0.0.0.0:8080", NewHTTPTransport("0.0.0.0", 8080).Addr())
	assert.Equal(t, ":8080", NewHTTPTransport("", 8080).Addr())
}
