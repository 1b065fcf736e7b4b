package controllers

import (
	"bytes"
	"net/http"

	"hotel-ops/models"
	"hotel-ops/services"
	"hotel-ops/utils"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type BillController struct {
	BillingSvc *services.BillingService
}

func NewBillController(svc *services.BillingService) *BillController {
	return &BillController{BillingSvc: svc}
}

type payBillRequest struct {
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
}

// GET /api/bills?status=unpaid
func (ctrl *BillController) GetBills(c *gin.Context) {
	var (
		bills []models.Bill
		err   error
	)
	if c.Query("status") == "unpaid" {
		bills, err = ctrl.BillingSvc.ListUnpaid(c.Request.Context())
	} else {
		bills, err = ctrl.BillingSvc.List(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bills)
}

func (ctrl *BillController) GetBill(c *gin.Context) {
	id, ok := getID(c)
	if !ok {
		return
	}
	bill, err := ctrl.BillingSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bill)
}

// POST /api/bills/:id/pay
func (ctrl *BillController) PayBill(c *gin.Context) {
	id, ok := getID(c)
	if !ok {
		return
	}
	var req payBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload")
		return
	}

	result, err := ctrl.BillingSvc.MarkPaid(c.Request.Context(), id, req.PaymentMethod)
	if err != nil {
		respondError(c, err)
		return
	}
	if result.CheckoutURL != "" {
		utils.JSONMessage(c, http.StatusOK, "Checkout session created", result)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Bill paid", result)
}

// GET /api/bills/export
func (ctrl *BillController) ExportBills(c *gin.Context) {
	var buf bytes.Buffer
	if err := ctrl.BillingSvc.Export(c.Request.Context(), &buf); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="bills.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
