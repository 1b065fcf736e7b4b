package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"hotel-ops/services"
	"hotel-ops/utils"

	"github.com/gin-gonic/gin"
)

func statusFor(kind services.ErrorKind) int {
	switch kind {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConflict:
		return http.StatusConflict
	case services.KindUnauthorized:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError turns a service failure into the error envelope.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	utils.JSONError(c, statusFor(services.KindOf(err)), services.MessageOf(err))
}

func badRequest(c *gin.Context, message string) {
	utils.JSONError(c, http.StatusBadRequest, message)
}

// getID reads the numeric :id path parameter, replying 400 when it is not one.
func getID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

func queryUint(c *gin.Context, key string) (uint, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	return uint(v), err
}

// parseTime accepts RFC3339 timestamps or plain dates (midnight UTC).
func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Parse("2006-01-02", raw)
}
