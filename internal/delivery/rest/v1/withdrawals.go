package v1

import (
	"gateway/internal/domain"
	"gateway/internal/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type newWithdrawalData struct {
	Username  string  `json:"username" validate:"required,min=1,max=64"`
	ToAddress string  `json:"to_address" validate:"required,min=10,max=128"`
	Network   string  `json:"network" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
}

// POST /withdrawals
func (h *Handler) withdrawalCreate(c *gin.Context) {
	var errid = logger.GenErrorId()

	var data newWithdrawalData
	if err := c.ShouldBindJSON(&data); err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return
	}

	if err := validator.New().Struct(data); err != nil {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return
	}

	withdrawal, err := h.services.Withdrawals.Create(data.Username, data.ToAddress, data.Network, decimal.NewFromFloat(data.Amount))
	if err != nil {
		responseErr(c, domain.GetStatusByErr(err), err.Error(), errid)
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, responseWithdrawalStarted{
		Error:        false,
		WithdrawalID: withdrawal.WithdrawalID,
		ToAddress:    withdrawal.To,
		Amount:       withdrawal.Amount.String(),
		Network:      withdrawal.Network,
		Status:       withdrawal.Status.ToString(),
	})
}

func (h *Handler) initWithdrawalRoutes(g *gin.RouterGroup) {
	g.POST("/withdrawals", h.withdrawalCreate)
}
