package domain

import (
	"errors"
	"fmt"
	"strings"
)

// SelectedAccount é uma conta de anúncios que o workspace escolheu sincronizar
type SelectedAccount struct {
	WorkspaceID string   `json:"workspace_id"`
	Provider    Provider `json:"provider"`
	ExternalID  string   `json:"external_id"`
	Name        string   `json:"name"`
	Currency    string   `json:"currency"`
	Timezone    string   `json:"timezone"`
}

var ErrInvalidAccountID = errors.New("invalid external account id")

// NormalizeAccountID aceita os formatos exibidos pelos provedores ("123-456-7890", "act_123")
// e devolve somente os dígitos usados nas chamadas de API
func NormalizeAccountID(provider Provider, raw string) (string, error) {
	id := strings.TrimSpace(raw)

	switch provider {
	case ProviderGoogle:
		id = strings.ReplaceAll(id, "-", "")
		if len(id) != 10 || !isDigits(id) {
			return "", fmt.Errorf("%w: %q", ErrInvalidAccountID, raw)
		}
	case ProviderMeta:
		id = strings.TrimPrefix(id, "act_")
		if id == "" || !isDigits(id) {
			return "", fmt.Errorf("%w: %q", ErrInvalidAccountID, raw)
		}
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}

	return id, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
