// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewClientSharesTransport(t *testing.T) {
	a := NewClient(5 * time.Second)
	b := NewClient(10 * time.Second)

	assert.Same(t, a.Transport, b.Transport)
	assert.Equal(t, 5*time.Second, a.Timeout)
	assert.Equal(t, 10*time.Second, b.Timeout)
}
