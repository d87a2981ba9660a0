package app

import (
	"fmt"
	"gateway/internal/bitcart"
	"gateway/internal/config"
	"gateway/internal/delivery"
	"gateway/internal/infra/nats"
	"gateway/internal/logger"
	"gateway/internal/service"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	cors "github.com/rs/cors/wrapper/gin"
	"gorm.io/gorm"
)

type App struct {
	Config    *config.Config
	Db        *gorm.DB
	NatsInfra *nats.NatsInfra
	Log       logger.Logger
}

func (app *App) Start() {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(cors.Default())

	client := bitcart.NewClient(app.Config.Bitcart.ApiUrls, app.Config.Bitcart.Token, app.Config.Bitcart.StoreID, app.Log)

	services := service.NewServices(client, app.NatsInfra, app.Db, app.Log, app.Config)

	app.Autostart(services)

	{
		h := delivery.InitHandler(services, app.Db, app.Config, app.NatsInfra, app.Log)

		h.InitAPI(r)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	eChan := make(chan error)
	interrupt := make(chan os.Signal, 1)

	fmt.Println("gateway web is starting")

	go func() {
		err := r.Run(app.Config.Api.Ipv4)
		if err != nil {
			eChan <- fmt.Errorf("listen and serve: %w", err)
		}
	}()

	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-eChan:
		app.Log.TemplHTTPError("app fatal error", app.Config.Api.Ipv4, err)
		return
	case <-interrupt:
		return
	}
}

// start autostart services
func (app *App) Autostart(services *service.Services) {

	// drops malformed proxies before the first webhook goes out
	services.WebhookSender.UpdateList(app.Config.ProxyList)

	fmt.Println("Autostart: expire stale invoices")
	services.Poller.RunFindEnd()

	fmt.Println("Autostart: resume invoice checks")
	services.Poller.RunAutostartCheck()

	fmt.Println("Autostart: start process events")
	services.OutboxEvents.StartProcessEvents()
}
