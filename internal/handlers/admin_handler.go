package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"appypay-service/internal/repository"
	"appypay-service/internal/services"
	"appypay-service/pkg/common"
)

// AdminHandler exposes the method listing and the administrative sync
// and token housekeeping endpoints.
type AdminHandler struct {
	Methods  repository.MethodStore
	Sync     *services.SyncService
	Auth     *services.AuthService
	Enqueuer services.SyncEnqueuer
}

func NewAdminHandler(methods repository.MethodStore, sync *services.SyncService, auth *services.AuthService) *AdminHandler {
	return &AdminHandler{Methods: methods, Sync: sync, Auth: auth}
}

func (h *AdminHandler) ListMethods(c *gin.Context) {
	methods, err := h.Methods.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(methods, "success"))
}

func (h *AdminHandler) RefreshMethods(c *gin.Context) {
	if err := h.Sync.RefreshMethods(); err != nil {
		c.JSON(http.StatusBadGateway, common.NewErrorResponse("method refresh failed", nil, http.StatusBadGateway))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(nil, "payment methods refreshed"))
}

// SyncPayments queues a reconciliation run when a queue is wired, and
// falls back to running it inline.
func (h *AdminHandler) SyncPayments(c *gin.Context) {
	if h.Enqueuer != nil {
		if err := h.Enqueuer.EnqueuePaymentSync(); err == nil {
			c.JSON(http.StatusAccepted, common.NewSuccessResponse(nil, "payment sync queued"))
			return
		}
	}

	h.Sync.RefreshAll()
	c.JSON(http.StatusOK, common.NewSuccessResponse(nil, "payment sync completed"))
}

func (h *AdminHandler) CheckTokens(c *gin.Context) {
	n, err := h.Auth.SweepExpired()
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error(), nil, http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"invalidated": n}, "token check completed"))
}
