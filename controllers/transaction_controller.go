package controllers

import (
	"net/http"
	"time"

	"hotel-ops/middleware"
	"hotel-ops/models"
	"hotel-ops/services"
	"hotel-ops/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type TransactionController struct {
	TransactionSvc *services.TransactionService
}

func NewTransactionController(svc *services.TransactionService) *TransactionController {
	return &TransactionController{TransactionSvc: svc}
}

type createTransactionRequest struct {
	GuestID    uint            `json:"guestId"`
	RoomID     uint            `json:"roomId"`
	CheckIn    time.Time       `json:"checkIn"`
	CheckOut   time.Time       `json:"checkOut"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// GET /api/transactions?status=&guestId=&roomId=
func (ctrl *TransactionController) GetTransactions(c *gin.Context) {
	guestID, err := queryUint(c, "guestId")
	if err != nil {
		badRequest(c, "Invalid guestId")
		return
	}
	roomID, err := queryUint(c, "roomId")
	if err != nil {
		badRequest(c, "Invalid roomId")
		return
	}

	list, err := ctrl.TransactionSvc.List(c.Request.Context(), services.TransactionFilter{
		Status:  models.TransactionStatus(c.Query("status")),
		GuestID: guestID,
		RoomID:  roomID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (ctrl *TransactionController) GetTransaction(c *gin.Context) {
	id, ok := getID(c)
	if !ok {
		return
	}
	t, err := ctrl.TransactionSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, t)
}

// POST /api/transactions
func (ctrl *TransactionController) CreateTransaction(c *gin.Context) {
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload")
		return
	}

	t, err := ctrl.TransactionSvc.Create(c.Request.Context(), services.CreateTransactionInput{
		GuestID:    req.GuestID,
		RoomID:     req.RoomID,
		StaffID:    middleware.CallerFrom(c).StaffID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		TotalPrice: req.TotalPrice,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusCreated, "Transaction created", t)
}

// POST /api/transactions/:id/checkin
func (ctrl *TransactionController) CheckIn(c *gin.Context) {
	id, ok := getID(c)
	if !ok {
		return
	}
	t, err := ctrl.TransactionSvc.CheckIn(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Guest checked in", t)
}

// POST /api/transactions/:id/checkout
func (ctrl *TransactionController) CheckOut(c *gin.Context) {
	id, ok := getID(c)
	if !ok {
		return
	}
	result, err := ctrl.TransactionSvc.CheckOut(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Guest checked out", result)
}

func (ctrl *TransactionController) DeleteTransaction(c *gin.Context) {
	id, ok := getID(c)
	if !ok {
		return
	}
	if err := ctrl.TransactionSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Transaction deleted", nil)
}

// GET /api/transactions/quote?roomId=&checkIn=&checkOut=
func (ctrl *TransactionController) Quote(c *gin.Context) {
	roomID, err := queryUint(c, "roomId")
	if err != nil {
		badRequest(c, "Invalid roomId")
		return
	}
	checkIn, err := parseTime(c.Query("checkIn"))
	if err != nil {
		badRequest(c, "Invalid checkIn")
		return
	}
	checkOut, err := parseTime(c.Query("checkOut"))
	if err != nil {
		badRequest(c, "Invalid checkOut")
		return
	}

	price, err := ctrl.TransactionSvc.Quote(c.Request.Context(), roomID, checkIn, checkOut)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"roomId": roomID, "totalPrice": price})
}
