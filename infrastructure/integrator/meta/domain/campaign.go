package metadomain

import (
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Campaign struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Status          string `json:"status"`
	EffectiveStatus string `json:"effective_status"`
	Objective       string `json:"objective"`
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// Paging.Next é a URL completa da próxima página; vazio na última
type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next"`
}

type CampaignsResponse struct {
	Data   []Campaign `json:"data"`
	Paging Paging     `json:"paging"`
}

type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// CampaignInsight é uma linha diária do /insights com level=campaign e time_increment=1.
// A Graph API devolve números como string; ctr vem em porcentagem.
type CampaignInsight struct {
	AccountID       string   `json:"account_id"`
	AccountCurrency string   `json:"account_currency"`
	Actions         []Action `json:"actions"`
	CampaignID      string   `json:"campaign_id"`
	CampaignName    string   `json:"campaign_name"`
	Clicks          string   `json:"clicks"`
	CTR             string   `json:"ctr"`
	DateStart       string   `json:"date_start"`
	DateStop        string   `json:"date_stop"`
	Impressions     string   `json:"impressions"`
	Objective       string   `json:"objective"`
	Spend           string   `json:"spend"`
}

type InsightsResponse struct {
	Data   []CampaignInsight `json:"data"`
	Paging Paging            `json:"paging"`
}

func (c *CampaignInsight) GetImpressions() int64 {
	return parseCount(c.Impressions, "impressions", c.CampaignID)
}

func (c *CampaignInsight) GetClicks() int64 {
	return parseCount(c.Clicks, "clicks", c.CampaignID)
}

// GetSpend devolve o gasto em unidade principal da moeda da conta
func (c *CampaignInsight) GetSpend() decimal.Decimal {
	return parseDecimal(c.Spend, "spend", c.CampaignID)
}

// GetCTR converte a porcentagem devolvida pela API em fração (2.5 -> 0.025)
func (c *CampaignInsight) GetCTR() (decimal.Decimal, bool) {
	if c.CTR == "" {
		return decimal.Zero, false
	}

	percent, err := decimal.NewFromString(c.CTR)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"campaign_id": c.CampaignID,
			"ctr":         c.CTR,
		}).Warn("insights: erro ao converter ctr")
		return decimal.Zero, false
	}

	return percent.Div(decimal.NewFromInt(100)), true
}

// GetConversions soma as ações dos tipos informados. Sem tipos configurados, usa o mapeamento pelo objetivo.
func (c *CampaignInsight) GetConversions(actionTypes []string) decimal.Decimal {
	wanted := make(map[string]struct{}, len(actionTypes))
	for _, actionType := range actionTypes {
		wanted[actionType] = struct{}{}
	}

	if len(wanted) == 0 {
		actionType, ok := MetaObjectiveToActionType[c.Objective]
		if !ok {
			logrus.WithField("objective", c.Objective).Debug("insights: objetivo sem ação mapeada")
			return decimal.Zero
		}
		wanted[actionType] = struct{}{}
	}

	total := decimal.Zero
	for _, action := range c.Actions {
		if _, ok := wanted[action.ActionType]; !ok {
			continue
		}
		total = total.Add(parseDecimal(action.Value, action.ActionType, c.CampaignID))
	}

	return total
}

func parseCount(value, field, campaignID string) int64 {
	if value == "" {
		return 0
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"campaign_id": campaignID,
			"field":       field,
			"value":       value,
		}).Warn("insights: erro ao converter valor inteiro")
		return 0
	}

	return parsed
}

func parseDecimal(value, field, campaignID string) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}

	parsed, err := decimal.NewFromString(value)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"campaign_id": campaignID,
			"field":       field,
			"value":       value,
		}).Warn("insights: erro ao converter valor decimal")
		return decimal.Zero
	}

	return parsed
}
