package domain

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID       int
	UserName     string
	UserEmail    string
	UserRoleID   int
	WorkspaceIDs []string
	jwt.RegisteredClaims
}

// CanAccessWorkspace: administradores acessam qualquer workspace
func (c *Claims) CanAccessWorkspace(workspaceID string, adminRoleID int) bool {
	if c == nil {
		return false
	}
	if c.UserRoleID == adminRoleID {
		return true
	}
	return slices.Contains(c.WorkspaceIDs, workspaceID)
}
