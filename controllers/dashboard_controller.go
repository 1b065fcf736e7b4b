package controllers

import (
	"net/http"

	"hotel-ops/services"
	"hotel-ops/utils"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardSvc *services.DashboardService
}

func NewDashboardController(svc *services.DashboardService) *DashboardController {
	return &DashboardController{DashboardSvc: svc}
}

// GET /api/dashboard
func (ctrl *DashboardController) GetSummary(c *gin.Context) {
	summary, err := ctrl.DashboardSvc.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, summary)
}

func (ctrl *DashboardController) GetOccupancy(c *gin.Context) {
	occ, err := ctrl.DashboardSvc.RoomOccupancy(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, occ)
}

func (ctrl *DashboardController) GetRevenue(c *gin.Context) {
	rev, err := ctrl.DashboardSvc.DailyRevenue(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rev)
}
