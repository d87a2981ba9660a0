package v1

import (
	"github.com/gin-gonic/gin"
)

type responseError struct {
	Error   bool   `json:"error"`
	ErrorID string `json:"error_id"`
	Msg     string `json:"msg"`
}

type responseWithdrawalStarted struct {
	Error        bool   `json:"error"`
	WithdrawalID string `json:"withdrawal_id"`
	ToAddress    string `json:"to_address"`
	Amount       string `json:"amount"`
	Network      string `json:"network"`
	Status       string `json:"status"`
}

// POST /webhooks/:processor
type responseWebhookAck struct {
	Ok     bool   `json:"ok"`
	Status string `json:"status,omitempty"`
}

func responseErr(c *gin.Context, statusCode int, msg, errorID string) {
	c.AbortWithStatusJSON(statusCode, responseError{true, errorID, msg})
}
