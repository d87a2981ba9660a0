package v1

import (
	"gateway/internal/config"
	"gateway/internal/infra/nats"
	"gateway/internal/logger"
	"gateway/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	services  *service.Services
	db        *gorm.DB
	config    *config.Config
	Natsinfra *nats.NatsInfra
	log       logger.Logger
}

func (h *Handler) InitRoutes(g *gin.RouterGroup) {
	{
		h.initDepositRoutes(g)
		h.initInvoiceRoutes(g)

		h.initWebhookRoutes(g)
		h.initWithdrawalRoutes(g)
		h.initAccountRoutes(g)
	}
}

func NewHandler(services *service.Services, db *gorm.DB, config *config.Config, natsinfra *nats.NatsInfra, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		Natsinfra: natsinfra,
		log:       log,
		services:  services,
		db:        db,
	}
}
