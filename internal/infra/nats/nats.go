package nats

import (
	"context"
	"fmt"
	"gateway/internal/config"
	"gateway/internal/logger"
	"gateway/pkg/nats/natsdomain"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

type NatsInfra struct {
	*natsdomain.Ns
}

// Init connects to nats and makes sure the deposits stream exists.
// Returns nil when no servers are configured (event publishing disabled).
func Init(config *config.Config, log logger.Logger) *NatsInfra {
	if config.Nats.Servers == "" {
		log.Debug("nats: no servers configured, events disabled")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	nc, err := nats.Connect(config.Nats.Servers,
		nats.MaxReconnects(100),
		nats.ReconnectWait(3*time.Second),
		nats.DisconnectHandler(func(nc *nats.Conn) {
			log.TemplNatsInfo("disconnected", nc.ConnectedUrl())
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.TemplNatsInfo("reconnected", nc.ConnectedUrl())
		}))
	if err != nil {
		log.TemplNatsError("Connect failed", config.Nats.Servers, err)
		panic("NATS: connect failed: " + err.Error())
	}

	js, err := jetstream.New(nc)
	if err != nil {
		panic(err)
	}

	if _, err := InitDepositsStream(ctx, js); err != nil {
		panic("NATS: create stream failed: " + err.Error())
	}

	fmt.Println("nats: Connected to", nc.ConnectedAddr())
	return &NatsInfra{&natsdomain.Ns{Nc: nc, Js: js}}
}

func InitDepositsStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     "deposits",
		Subjects: natsdomain.SubjectsJetStream[:],
	})
}
