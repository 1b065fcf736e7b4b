package controllers

import (
	"net/http"

	"hotel-ops/middleware"
	"hotel-ops/models"
	"hotel-ops/services"
	"hotel-ops/utils"

	"github.com/gin-gonic/gin"
)

type StaffController struct {
	StaffSvc *services.StaffService
}

func NewStaffController(svc *services.StaffService) *StaffController {
	return &StaffController{StaffSvc: svc}
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createStaffPayload struct {
	Username  string               `json:"username"`
	Email     string               `json:"email"`
	Password  string               `json:"password"`
	FirstName string               `json:"firstName"`
	LastName  string               `json:"lastName"`
	Role      models.StaffRole     `json:"role"`
	Position  models.StaffPosition `json:"position"`
	ImageURL  string               `json:"imageUrl"`
}

type updateStaffPayload struct {
	Username  string               `json:"username"`
	FirstName string               `json:"firstName"`
	LastName  string               `json:"lastName"`
	Role      models.StaffRole     `json:"role"`
	Position  models.StaffPosition `json:"position"`
	Password  string               `json:"password"`
}

// POST /api/auth/login
func (ctrl *StaffController) Login(c *gin.Context) {
	var p loginPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "invalid payload")
		return
	}

	result, err := ctrl.StaffSvc.Login(c.Request.Context(), p.Username, p.Password)
	if err != nil {
		if services.KindOf(err) == services.KindUnauthorized {
			utils.JSONError(c, http.StatusUnauthorized, services.MessageOf(err))
			return
		}
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

// GET /api/staff/me
func (ctrl *StaffController) Me(c *gin.Context) {
	caller := middleware.CallerFrom(c)
	staff, err := ctrl.StaffSvc.Get(c.Request.Context(), caller, caller.StaffID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, staff)
}

func (ctrl *StaffController) GetStaff(c *gin.Context) {
	list, err := ctrl.StaffSvc.List(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (ctrl *StaffController) GetStaffByID(c *gin.Context) {
	id, ok := getID(c)
	if !ok {
		return
	}
	staff, err := ctrl.StaffSvc.Get(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, staff)
}

func (ctrl *StaffController) CreateStaff(c *gin.Context) {
	var p createStaffPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "invalid payload")
		return
	}
	staff, err := ctrl.StaffSvc.Create(c.Request.Context(), middleware.CallerFrom(c), services.CreateStaffInput(p))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "Staff created", staff)
}

func (ctrl *StaffController) UpdateStaff(c *gin.Context) {
	id, ok := getID(c)
	if !ok {
		return
	}
	var p updateStaffPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "invalid payload")
		return
	}
	staff, err := ctrl.StaffSvc.Update(c.Request.Context(), middleware.CallerFrom(c), id, services.UpdateStaffInput(p))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Staff updated", staff)
}

func (ctrl *StaffController) DeleteStaff(c *gin.Context) {
	id, ok := getID(c)
	if !ok {
		return
	}
	if err := ctrl.StaffSvc.Delete(c.Request.Context(), middleware.CallerFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Staff deleted", nil)
}
