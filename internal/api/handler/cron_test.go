package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"

	"github.com/headply/restaurant-analysis/internal/config"
	"github.com/headply/restaurant-analysis/internal/domain"
	"github.com/headply/restaurant-analysis/internal/scheduler"
	"github.com/headply/restaurant-analysis/pkg/middleware"
)

func cronServices() CronJobServices {
	return CronJobServices{
		SnapshotSyncService: scheduler.NewSnapshotSyncService(nil, nil, &config.Config{}),
	}
}

func requestWithRole(method, target string, roleID int) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	claims := &domain.Claims{UserID: 10, UserRoleID: roleID}

	return req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, claims))
}

func withCronType(req *http.Request, cronType string) *http.Request {
	params := httprouter.Params{{Key: "type", Value: cronType}}

	return req.WithContext(context.WithValue(req.Context(), httprouter.ParamsKey, params))
}

func TestGetCronStatusAllowsSupervisor(t *testing.T) {
	recorder := httptest.NewRecorder()
	req := requestWithRole(http.MethodGet, "/v1/cron/status", middleware.RoleSupervisor)

	GetCronStatus(cronServices())(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "sync_enabled")
}

func TestGetCronStatusRejectsClient(t *testing.T) {
	recorder := httptest.NewRecorder()
	req := requestWithRole(http.MethodGet, "/v1/cron/status", middleware.RoleClient)

	GetCronStatus(cronServices())(recorder, req)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestRunCronJobSupervisorPassesRoleCheck(t *testing.T) {
	recorder := httptest.NewRecorder()
	req := requestWithRole(http.MethodPost, "/v1/cron/unknown/run", middleware.RoleSupervisor)
	req = withCronType(req, "unknown")

	RunCronJob(cronServices())(recorder, req)

	// O supervisor passa pelo controle de acesso; a falha é só do tipo inválido
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Valores aceitos")
}

func TestRunCronJobRejectsClient(t *testing.T) {
	recorder := httptest.NewRecorder()
	req := requestWithRole(http.MethodPost, "/v1/cron/snapshot/run", middleware.RoleClient)
	req = withCronType(req, "snapshot")

	RunCronJob(cronServices())(recorder, req)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}
