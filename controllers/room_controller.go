package controllers

import (
	"net/http"

	"hotel-ops/middleware"
	"hotel-ops/models"
	"hotel-ops/services"
	"hotel-ops/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	RoomSvc         *services.RoomService
	AvailabilitySvc *services.AvailabilityService
}

func NewRoomController(rooms *services.RoomService, availability *services.AvailabilityService) *RoomController {
	return &RoomController{RoomSvc: rooms, AvailabilitySvc: availability}
}

type createRoomRequest struct {
	RoomNumber string            `json:"roomNumber"`
	Floor      int               `json:"floor"`
	Status     models.RoomStatus `json:"status"`
	Images     []string          `json:"images"`
	RoomTypeID uint              `json:"roomTypeId"`
}

type updateRoomRequest struct {
	RoomNumber *string            `json:"roomNumber"`
	Floor      *int               `json:"floor"`
	Status     *models.RoomStatus `json:"status"`
	Images     []string           `json:"images"`
	RoomTypeID *uint              `json:"roomTypeId"`
}

// GET /api/rooms
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.RoomSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GET /api/rooms/:id
func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, ok := getID(c)
	if !ok {
		return
	}
	room, err := ctrl.RoomSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// GET /api/rooms/available?start=&end=
func (ctrl *RoomController) GetAvailableRooms(c *gin.Context) {
	start, err := parseTime(c.Query("start"))
	if err != nil {
		badRequest(c, "Invalid start date")
		return
	}
	end, err := parseTime(c.Query("end"))
	if err != nil {
		badRequest(c, "Invalid end date")
		return
	}
	window := models.DateRange{Start: start, End: end}
	if !window.Valid() {
		badRequest(c, services.MsgCheckInBeforeCheckOut)
		return
	}

	rooms, err := ctrl.AvailabilitySvc.AvailableRooms(c.Request.Context(), window)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// POST /api/rooms
func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload")
		return
	}

	room, err := ctrl.RoomSvc.Create(c.Request.Context(), middleware.CallerFrom(c), services.CreateRoomInput{
		RoomNumber: req.RoomNumber,
		Floor:      req.Floor,
		Status:     req.Status,
		Images:     req.Images,
		RoomTypeID: req.RoomTypeID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "Room created", room)
}

// PUT/PATCH /api/rooms/:id
func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := getID(c)
	if !ok {
		return
	}
	var req updateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload")
		return
	}

	room, err := ctrl.RoomSvc.Update(c.Request.Context(), middleware.CallerFrom(c), id, services.UpdateRoomInput{
		RoomNumber: req.RoomNumber,
		Floor:      req.Floor,
		Status:     req.Status,
		Images:     req.Images,
		RoomTypeID: req.RoomTypeID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Room updated", room)
}

// DELETE /api/rooms/:id
func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := getID(c)
	if !ok {
		return
	}
	if err := ctrl.RoomSvc.Delete(c.Request.Context(), middleware.CallerFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Room deleted", nil)
}
