package server

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMapEnvToGinMode(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"production", gin.ReleaseMode},
		{"prod", gin.ReleaseMode},
		{"release", gin.ReleaseMode},
		{"test", gin.TestMode},
		{"testing", gin.TestMode},
		{"development", gin.DebugMode},
		{"", gin.DebugMode},
		{"staging", gin.DebugMode},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			assert.Equal(t, tt.want, mapEnvToGinMode(tt.env))
		})
	}
}
