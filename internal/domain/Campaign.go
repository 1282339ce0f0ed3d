package domain

import (
	"time"
)

// Campaign é a projeção normalizada de uma campanha do provedor.
// Chave natural: (workspace, conta externa, campanha externa).
type Campaign struct {
	WorkspaceID       string    `json:"workspace_id"`
	Provider          Provider  `json:"provider"`
	ExternalAccountID string    `json:"external_account_id"`
	ExternalID        string    `json:"external_id"`
	Name              string    `json:"name"`
	Status            string    `json:"status"`
	Channel           string    `json:"channel"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type CampaignKey struct {
	WorkspaceID       string
	ExternalAccountID string
	ExternalID        string
}

func (c Campaign) Key() CampaignKey {
	return CampaignKey{
		WorkspaceID:       c.WorkspaceID,
		ExternalAccountID: c.ExternalAccountID,
		ExternalID:        c.ExternalID,
	}
}

// AccountData é o resultado normalizado da busca de uma conta
type AccountData struct {
	Campaigns []Campaign
	Metrics   []DailyMetric
}
