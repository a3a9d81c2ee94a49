// Package session extracts bearer tokens from inbound requests.
package session

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

// Manager reads bearer tokens from the Authorization header.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// ReadToken returns the bearer token, or false when the header is absent or
// malformed.
func (m *Manager) ReadToken(c *gin.Context) (string, bool) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return "", false
	}
	return token, true
}
