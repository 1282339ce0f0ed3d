package syncing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-sync-api/internal/domain"
)

func TestSyncError(t *testing.T) {
	providerErr := &domain.ProviderError{Provider: domain.ProviderMeta, Kind: domain.ProviderErrorData, StatusCode: 400, Message: "invalid account"}

	tests := []struct {
		name     string
		err      *SyncError
		wantKind ErrorKind
		wantMsg  string
		wantIs   error
	}{
		{
			name:     "erro de conta",
			err:      NewAccountError("123", providerErr),
			wantKind: KindAccount,
			wantMsg:  "account 123 failed: " + providerErr.Error(),
		},
		{
			name:     "erro de gravação com detalhes",
			err:      NewSyncError(KindStorage, ErrStorage, "upsert campaigns"),
			wantKind: KindStorage,
			wantMsg:  "storage error: upsert campaigns",
			wantIs:   ErrStorage,
		},
		{
			name:     "erro de configuração sem detalhes",
			err:      NewSyncError(KindConfiguration, ErrConnectionMissing, ""),
			wantKind: KindConfiguration,
			wantMsg:  ErrConnectionMissing.Error(),
			wantIs:   ErrConnectionMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.err.Error())

			kind, ok := KindOf(tt.err)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, kind)

			if tt.wantIs != nil {
				assert.True(t, errors.Is(tt.err, tt.wantIs))
			}
		})
	}
}

func TestNewAccountError_KeepsProviderError(t *testing.T) {
	providerErr := &domain.ProviderError{Provider: domain.ProviderGoogle, Kind: domain.ProviderErrorTransient, Message: "timeout"}

	err := NewAccountError("A", providerErr)

	var target *domain.ProviderError
	require.ErrorAs(t, err, &target)
	assert.True(t, target.Retryable())
	assert.Equal(t, "A", err.AccountID)
}

func TestKindOf_PlainError(t *testing.T) {
	_, ok := KindOf(errors.New("boom"))
	assert.False(t, ok)
}
