package handler

import (
	"net/http"

	"github.com/vfg2006/ads-sync-api/internal/api/handler/router"
	"github.com/vfg2006/ads-sync-api/internal/usecases/account"
	"github.com/vfg2006/ads-sync-api/internal/usecases/syncing"
	"github.com/vfg2006/ads-sync-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Sync(service syncing.Syncer, defaultLookbackDays int) []router.Route {
	workspaceScoped := []func(http.Handler) http.Handler{middleware.AllRoles(), middleware.WorkspaceAccess()}

	return []router.Route{
		{
			Path:        "/v1/workspaces/:workspace_id/providers/:provider/sync",
			Method:      http.MethodPost,
			Handler:     TriggerSync(service, defaultLookbackDays),
			Middlewares: workspaceScoped,
		},
		{
			Path:        "/v1/workspaces/:workspace_id/providers/:provider/sync/status",
			Method:      http.MethodGet,
			Handler:     GetSyncStatus(service),
			Middlewares: workspaceScoped,
		},
		{
			Path:        "/v1/workspaces/:workspace_id/providers/:provider/disconnect",
			Method:      http.MethodPut,
			Handler:     DisconnectProvider(service),
			Middlewares: workspaceScoped,
		},
	}
}

func SelectedAccounts(service account.AccountService) []router.Route {
	workspaceScoped := []func(http.Handler) http.Handler{middleware.AllRoles(), middleware.WorkspaceAccess()}

	return []router.Route{
		{
			Path:        "/v1/workspaces/:workspace_id/providers/:provider/accounts",
			Method:      http.MethodGet,
			Handler:     SelectedAccountList(service),
			Middlewares: workspaceScoped,
		},
		{
			Path:        "/v1/workspaces/:workspace_id/providers/:provider/accounts",
			Method:      http.MethodPost,
			Handler:     SelectAccount(service),
			Middlewares: workspaceScoped,
		},
		{
			Path:        "/v1/workspaces/:workspace_id/providers/:provider/accounts/:account_id",
			Method:      http.MethodDelete,
			Handler:     UnselectAccount(service),
			Middlewares: workspaceScoped,
		},
	}
}

func Metrics(reader MetricsReader) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/workspaces/:workspace_id/accounts/:account_id/campaigns/:campaign_id/metrics",
			Method:      http.MethodGet,
			Handler:     GetCampaignMetrics(reader),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles(), middleware.WorkspaceAccess()},
		},
	}
}

func SyncRuns(service syncing.Syncer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sync-runs/:id",
			Method:      http.MethodGet,
			Handler:     GetSyncRun(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sync-runs/:id/logs",
			Method:      http.MethodGet,
			Handler:     GetSyncRunLogs(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
