package domain

import (
	"time"
)

type ConnectionStatus string

const (
	ConnectionStatusActive       ConnectionStatus = "active"
	ConnectionStatusDisconnected ConnectionStatus = "disconnected"
)

// Connection é o vínculo OAuth de um workspace com um provedor.
// Existe no máximo uma conexão ativa por (workspace, provider).
type Connection struct {
	ID             string           `json:"id"`
	WorkspaceID    string           `json:"workspace_id"`
	Provider       Provider         `json:"provider"`
	AccessToken    string           `json:"-"`
	RefreshToken   string           `json:"-"`
	TokenExpiresAt time.Time        `json:"token_expires_at"`
	Status         ConnectionStatus `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func (c *Connection) IsActive() bool {
	return c != nil && c.Status == ConnectionStatusActive
}

// TokenExpired indica se o access token precisa ser renovado em now.
// Expiração igual a now conta como expirado.
func (c *Connection) TokenExpired(now time.Time, skew time.Duration) bool {
	return !c.TokenExpiresAt.After(now.Add(skew))
}

// TokenUpdate carrega o resultado da troca do refresh token
type TokenUpdate struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}
