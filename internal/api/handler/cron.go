package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-sync-api/pkg/apiErrors"
)

const (
	CronJobTypeSync = "sync"
	CronJobTypeAll  = "all"
)

// CronJob é implementado pelos agendadores que podem ser disparados manualmente
type CronJob interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// CronJobServices contém os agendadores disponíveis por tipo
type CronJobServices struct {
	ProviderSync CronJob
}

func (s CronJobServices) byType() map[string]CronJob {
	jobs := map[string]CronJob{}
	if s.ProviderSync != nil {
		jobs[CronJobTypeSync] = s.ProviderSync
	}
	return jobs
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		jobs := services.byType()

		var selected map[string]CronJob
		if cronType == CronJobTypeAll {
			selected = jobs
		} else if job, ok := jobs[cronType]; ok {
			selected = map[string]CronJob{cronType: job}
		} else {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: sync, all", nil)
			return
		}

		started := map[string]bool{}
		for name, job := range selected {
			started[name] = job.TriggerManualSync()
		}

		if cronType != CronJobTypeAll && !started[cronType] {
			apiErrors.WriteError(w, apiErrors.ErrSyncAlreadyRunning, "Cron job já em andamento", nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
			"started": started,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{}
		for name, job := range services.byType() {
			status[name] = job.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
