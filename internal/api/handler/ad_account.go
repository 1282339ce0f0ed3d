package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-sync-api/internal/domain"
	"github.com/vfg2006/ads-sync-api/internal/usecases/account"
	"github.com/vfg2006/ads-sync-api/pkg/apiErrors"
)

type SelectAccountRequest struct {
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	Currency   string `json:"currency"`
	Timezone   string `json:"timezone"`
}

func writeAccountError(w http.ResponseWriter, err error) {
	var accountErr *account.AccountError
	if errors.As(err, &accountErr) {
		apiErrors.WriteError(w, accountErr.Code, accountErr.Error(), nil)
		return
	}

	logrus.WithError(err).Error("Erro inesperado em contas selecionadas")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao processar contas selecionadas", nil)
}

func SelectedAccountList(service account.AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspaceID, provider, ok := workspaceProvider(w, r)
		if !ok {
			return
		}

		accounts, err := service.ListSelected(r.Context(), workspaceID, provider)
		if err != nil {
			writeAccountError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, accounts)
	}
}

func SelectAccount(service account.AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspaceID, provider, ok := workspaceProvider(w, r)
		if !ok {
			return
		}

		req := SelectAccountRequest{}
		if !decodeBody(w, r, &req) {
			return
		}

		if req.ExternalID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "external_id é obrigatório", nil)
			return
		}

		selected, err := service.SelectAccount(r.Context(), &domain.SelectedAccount{
			WorkspaceID: workspaceID,
			Provider:    provider,
			ExternalID:  req.ExternalID,
			Name:        req.Name,
			Currency:    req.Currency,
			Timezone:    req.Timezone,
		})
		if err != nil {
			writeAccountError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, selected)
	}
}

func UnselectAccount(service account.AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspaceID, provider, ok := workspaceProvider(w, r)
		if !ok {
			return
		}

		accountID := httprouter.ParamsFromContext(r.Context()).ByName("account_id")
		if err := service.UnselectAccount(r.Context(), workspaceID, provider, accountID); err != nil {
			writeAccountError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
