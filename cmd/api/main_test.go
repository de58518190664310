package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harentsoaR/clinic-api/internal/config"
)

func TestCORSConfig(t *testing.T) {
	c := corsConfig([]string{"*"})
	assert.True(t, c.AllowAllOrigins)
	assert.False(t, c.AllowCredentials)
	assert.NoError(t, c.Validate())

	c = corsConfig([]string{"https://clinic.example.com"})
	assert.False(t, c.AllowAllOrigins)
	assert.True(t, c.AllowCredentials)
	assert.Equal(t, []string{"https://clinic.example.com"}, c.AllowOrigins)
	assert.NoError(t, c.Validate())
}

func TestOpenAudit_DisabledWithoutURI(t *testing.T) {
	audit, closeFn, err := openAudit(&config.Config{}, newLogger(&config.Config{}))
	assert.NoError(t, err)
	assert.NotNil(t, audit)
	closeFn()
}
