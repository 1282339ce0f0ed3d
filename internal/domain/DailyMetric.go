package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const derivedRatePrecision = 6

// DailyMetric é a unidade atômica de desempenho sincronizado.
// Chave natural: (workspace, conta externa, campanha externa, data).
// Date é um dia de calendário no fuso da conta, formato 2006-01-02.
type DailyMetric struct {
	WorkspaceID        string          `json:"workspace_id"`
	Provider           Provider        `json:"provider"`
	ExternalAccountID  string          `json:"external_account_id"`
	ExternalCampaignID string          `json:"external_campaign_id"`
	Date               string          `json:"date"`
	Impressions        int64           `json:"impressions"`
	Clicks             int64           `json:"clicks"`
	Spend              decimal.Decimal `json:"spend"`
	Conversions        decimal.Decimal `json:"conversions"`
	CTR                decimal.Decimal `json:"ctr"`
	CPC                decimal.Decimal `json:"cpc"`
	Currency           string          `json:"currency"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

type DailyMetricKey struct {
	WorkspaceID        string
	ExternalAccountID  string
	ExternalCampaignID string
	Date               string
}

func (m DailyMetric) Key() DailyMetricKey {
	return DailyMetricKey{
		WorkspaceID:        m.WorkspaceID,
		ExternalAccountID:  m.ExternalAccountID,
		ExternalCampaignID: m.ExternalCampaignID,
		Date:               m.Date,
	}
}

// ComputeDerived recalcula ctr (fração) e cpc a partir dos valores brutos
func (m *DailyMetric) ComputeDerived() {
	m.CTR = decimal.Zero
	m.CPC = decimal.Zero

	if m.Impressions > 0 {
		m.CTR = decimal.NewFromInt(m.Clicks).
			DivRound(decimal.NewFromInt(m.Impressions), derivedRatePrecision)
	}

	if m.Clicks > 0 {
		m.CPC = m.Spend.DivRound(decimal.NewFromInt(m.Clicks), derivedRatePrecision)
	}
}

// MicrosToUnits converte valores monetários em micro-unidades para a unidade principal
func MicrosToUnits(micros int64) decimal.Decimal {
	return decimal.New(micros, -6)
}
