package v1

import (
	"gateway/internal/domain"
	"gateway/internal/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /accounts/:username
func (h *Handler) accountInfo(c *gin.Context) {
	var errid = logger.GenErrorId()

	username := c.Param("username")
	if username == "" {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return
	}

	account, err := h.services.Accounts.Get(h.db, username)
	if err != nil {
		responseErr(c, domain.GetStatusByErr(err), err.Error(), errid)
		return
	}

	c.AbortWithStatusJSON(http.StatusOK, account)
}

func (h *Handler) initAccountRoutes(g *gin.RouterGroup) {
	g.GET("/accounts/:username", h.accountInfo)
}
