package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-sync-api/internal/domain"
	"github.com/vfg2006/ads-sync-api/internal/usecases/syncing"
	"github.com/vfg2006/ads-sync-api/pkg/apiErrors"
	"github.com/vfg2006/ads-sync-api/pkg/log"
	"github.com/vfg2006/ads-sync-api/pkg/middleware"
)

type SyncRequest struct {
	LookbackDays *int `json:"lookback_days"`
}

type SyncStatusResponse struct {
	Running bool            `json:"running"`
	Run     *domain.SyncRun `json:"run"`
}

// workspaceProvider lê e valida os parâmetros :workspace_id e :provider
func workspaceProvider(w http.ResponseWriter, r *http.Request) (string, domain.Provider, bool) {
	params := httprouter.ParamsFromContext(r.Context())

	workspaceID := params.ByName("workspace_id")
	if workspaceID == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "workspace_id é obrigatório", nil)
		return "", "", false
	}

	provider, err := domain.ParseProvider(params.ByName("provider"))
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
		return "", "", false
	}

	return workspaceID, provider, true
}

// TriggerSync executa uma sincronização completa dentro da requisição
func TriggerSync(service syncing.Syncer, defaultLookbackDays int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspaceID, provider, ok := workspaceProvider(w, r)
		if !ok {
			return
		}

		req := SyncRequest{}
		if !decodeBody(w, r, &req) {
			return
		}

		lookbackDays := defaultLookbackDays
		if req.LookbackDays != nil {
			lookbackDays = *req.LookbackDays
		}

		result, err := service.Sync(r.Context(), workspaceID, provider, lookbackDays)
		if err != nil {
			writeSyncError(w, r, result, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func writeSyncError(w http.ResponseWriter, r *http.Request, result *domain.SyncResult, err error) {
	logger := log.ForContext(r.Context()).WithError(errors.Wrap(err, "sync"))

	switch {
	case errors.Is(err, syncing.ErrSyncAlreadyRunning):
		apiErrors.WriteError(w, apiErrors.ErrSyncAlreadyRunning, err.Error(), nil)
		return
	case errors.Is(err, syncing.ErrInvalidLookback),
		errors.Is(err, syncing.ErrLookbackTooLarge),
		errors.Is(err, domain.ErrUnknownProvider):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
		return
	}

	// Sem resultado a execução nem chegou a ser aberta
	if result == nil {
		logger.Error("Erro ao iniciar sincronização")
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao registrar a execução", nil)
		return
	}

	code := apiErrors.ErrSyncFailed
	switch {
	case errors.Is(err, syncing.ErrConnectionMissing):
		code = apiErrors.ErrConnectionNotFound
	case errors.Is(err, syncing.ErrReconnectRequired):
		code = apiErrors.ErrReconnectRequired
	case errors.Is(err, syncing.ErrProviderCredentialsMissing):
		code = apiErrors.ErrProviderUnavailable
	}

	logger.WithField("run_id", result.RunID).Warn("Sincronização finalizada com falha")
	apiErrors.WriteError(w, code, err.Error(), result)
}

// GetSyncStatus retorna a última execução do workspace para o provedor
func GetSyncStatus(service syncing.Syncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspaceID, provider, ok := workspaceProvider(w, r)
		if !ok {
			return
		}

		run, err := service.LatestRun(r.Context(), workspaceID, provider)
		if err != nil {
			logrus.WithError(err).Error("Erro ao buscar última execução")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar última execução", nil)
			return
		}

		running := service.IsRunning(workspaceID, provider)
		if run == nil && !running {
			apiErrors.WriteError(w, apiErrors.ErrNotFound, "Nenhuma execução encontrada", nil)
			return
		}

		writeJSON(w, http.StatusOK, SyncStatusResponse{Running: running, Run: run})
	}
}

// loadRun busca a execução de :id e confere se o usuário acessa o workspace dela
func loadRun(w http.ResponseWriter, r *http.Request, service syncing.Syncer) (*domain.SyncRun, bool) {
	runID := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if runID == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da execução é obrigatório", nil)
		return nil, false
	}

	run, err := service.GetRun(r.Context(), runID)
	if err != nil {
		logrus.WithError(err).WithField("run_id", runID).Error("Erro ao buscar execução")
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar execução", nil)
		return nil, false
	}

	claims, _ := middleware.ClaimsFromContext(r.Context())
	if run == nil || !claims.CanAccessWorkspace(run.WorkspaceID, middleware.RoleAdmin) {
		apiErrors.WriteError(w, apiErrors.ErrNotFound, "Execução não encontrada", nil)
		return nil, false
	}

	return run, true
}

func GetSyncRun(service syncing.Syncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, ok := loadRun(w, r, service)
		if !ok {
			return
		}

		writeJSON(w, http.StatusOK, run)
	}
}

// GetSyncRunLogs retorna o histórico de auditoria da execução em ordem de gravação
func GetSyncRunLogs(service syncing.Syncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, ok := loadRun(w, r, service)
		if !ok {
			return
		}

		logs, err := service.ListRunLogs(r.Context(), run.ID)
		if err != nil {
			logrus.WithError(err).WithField("run_id", run.ID).Error("Erro ao buscar logs da execução")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar logs da execução", nil)
			return
		}

		writeJSON(w, http.StatusOK, logs)
	}
}

// DisconnectProvider marca a conexão como desconectada
func DisconnectProvider(service syncing.Syncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspaceID, provider, ok := workspaceProvider(w, r)
		if !ok {
			return
		}

		if err := service.Disconnect(r.Context(), workspaceID, provider); err != nil {
			if errors.Is(err, syncing.ErrConnectionMissing) {
				apiErrors.WriteError(w, apiErrors.ErrNotFound, "Nenhuma conexão ativa para o provedor", nil)
				return
			}

			logrus.WithError(err).Error("Erro ao desconectar provedor")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao desconectar provedor", nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"workspace_id": workspaceID,
			"provider":     provider,
			"status":       domain.ConnectionStatusDisconnected,
		})
	}
}
