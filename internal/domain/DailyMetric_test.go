package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMicrosToUnits(t *testing.T) {
	assert.Equal(t, "1.25", MicrosToUnits(1_250_000).String())
	assert.Equal(t, "0.000001", MicrosToUnits(1).String())
	assert.True(t, MicrosToUnits(0).IsZero())
}

func TestDailyMetric_ComputeDerived(t *testing.T) {
	tests := []struct {
		name    string
		metric  DailyMetric
		wantCTR string
		wantCPC string
	}{
		{
			name:    "valores normais",
			metric:  DailyMetric{Impressions: 1000, Clicks: 20, Spend: MicrosToUnits(1_250_000)},
			wantCTR: "0.02",
			wantCPC: "0.0625",
		},
		{
			name:    "sem impressões",
			metric:  DailyMetric{Impressions: 0, Clicks: 0, Spend: decimal.Zero},
			wantCTR: "0",
			wantCPC: "0",
		},
		{
			name:    "impressões sem cliques",
			metric:  DailyMetric{Impressions: 300, Clicks: 0, Spend: decimal.NewFromInt(5)},
			wantCTR: "0",
			wantCPC: "0",
		},
		{
			name:    "arredonda em seis casas",
			metric:  DailyMetric{Impressions: 3, Clicks: 1, Spend: decimal.NewFromInt(1)},
			wantCTR: "0.333333",
			wantCPC: "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.metric.ComputeDerived()
			assert.Equal(t, tt.wantCTR, tt.metric.CTR.String())
			assert.Equal(t, tt.wantCPC, tt.metric.CPC.String())
		})
	}
}

func TestProviderErrorClassification(t *testing.T) {
	auth := &ProviderError{Provider: ProviderGoogle, Kind: ProviderErrorAuth, StatusCode: 401}
	transient := &ProviderError{Provider: ProviderMeta, Kind: ProviderErrorTransient, StatusCode: 503}
	quota := &ProviderError{Provider: ProviderMeta, Kind: ProviderErrorQuota, StatusCode: 429, Code: "17"}

	assert.True(t, IsProviderAuthError(auth))
	assert.False(t, IsRetryableProviderError(auth))
	assert.True(t, IsRetryableProviderError(transient))
	assert.False(t, IsRetryableProviderError(quota))
	assert.False(t, IsProviderAuthError(assert.AnError))
	assert.Equal(t, "meta api error (quota, status 429, code 17): ", quota.Error())
}

func TestParseProvider(t *testing.T) {
	provider, err := ParseProvider(" Google ")
	assert.NoError(t, err)
	assert.Equal(t, ProviderGoogle, provider)

	_, err = ParseProvider("tiktok")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}
