package controllers

import (
	"net/http"

	"hotel-ops/middleware"
	"hotel-ops/services"
	"hotel-ops/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type RoomTypeController struct {
	RoomTypeSvc *services.RoomTypeService
}

func NewRoomTypeController(svc *services.RoomTypeService) *RoomTypeController {
	return &RoomTypeController{RoomTypeSvc: svc}
}

type roomTypeRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Capacity    int             `json:"capacity"`
	Price       decimal.Decimal `json:"price"`
	Amenities   []string        `json:"amenities"`
}

func (r roomTypeRequest) input() services.RoomTypeInput {
	return services.RoomTypeInput{
		Name:        r.Name,
		Description: r.Description,
		Capacity:    r.Capacity,
		Price:       r.Price,
		Amenities:   r.Amenities,
	}
}

func (ctrl *RoomTypeController) GetRoomTypes(c *gin.Context) {
	list, err := ctrl.RoomTypeSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (ctrl *RoomTypeController) GetRoomType(c *gin.Context) {
	id, ok := getID(c)
	if !ok {
		return
	}
	rt, err := ctrl.RoomTypeSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rt)
}

func (ctrl *RoomTypeController) CreateRoomType(c *gin.Context) {
	var req roomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload")
		return
	}
	rt, err := ctrl.RoomTypeSvc.Create(c.Request.Context(), middleware.CallerFrom(c), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "Room type created", rt)
}

func (ctrl *RoomTypeController) UpdateRoomType(c *gin.Context) {
	id, ok := getID(c)
	if !ok {
		return
	}
	var req roomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload")
		return
	}
	rt, err := ctrl.RoomTypeSvc.Update(c.Request.Context(), middleware.CallerFrom(c), id, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Room type updated", rt)
}

func (ctrl *RoomTypeController) DeleteRoomType(c *gin.Context) {
	id, ok := getID(c)
	if !ok {
		return
	}
	if err := ctrl.RoomTypeSvc.Delete(c.Request.Context(), middleware.CallerFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Room type deleted", nil)
}
