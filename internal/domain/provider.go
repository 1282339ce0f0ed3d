package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownProvider = errors.New("unknown provider")

// Provider identifica uma plataforma de anúncios externa
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderMeta   Provider = "meta"
)

var Providers = []Provider{ProviderGoogle, ProviderMeta}

func ParseProvider(value string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(value))) {
	case ProviderGoogle:
		return ProviderGoogle, nil
	case ProviderMeta:
		return ProviderMeta, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownProvider, value)
}

func (p Provider) String() string {
	return string(p)
}
