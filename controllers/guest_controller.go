package controllers

import (
	"net/http"

	"hotel-ops/services"
	"hotel-ops/utils"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	GuestSvc *services.GuestService
}

func NewGuestController(svc *services.GuestService) *GuestController {
	return &GuestController{GuestSvc: svc}
}

type guestRequest struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	IdentityNo string `json:"identityNo"`
	ImageURL   string `json:"imageUrl"`
}

func (r guestRequest) input() services.GuestInput {
	return services.GuestInput(r)
}

func (ctrl *GuestController) GetGuests(c *gin.Context) {
	guests, err := ctrl.GuestSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guests)
}

func (ctrl *GuestController) GetGuestByID(c *gin.Context) {
	id, ok := getID(c)
	if !ok {
		return
	}
	guest, err := ctrl.GuestSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

func (ctrl *GuestController) CreateGuest(c *gin.Context) {
	var req guestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload")
		return
	}
	guest, err := ctrl.GuestSvc.Create(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "Guest created", guest)
}

func (ctrl *GuestController) UpdateGuest(c *gin.Context) {
	id, ok := getID(c)
	if !ok {
		return
	}
	var req guestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload")
		return
	}
	guest, err := ctrl.GuestSvc.Update(c.Request.Context(), id, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Guest updated", guest)
}
