package main

import (
	"gateway/internal/app"
	"gateway/internal/config"
	"gateway/internal/infra/nats"
	"gateway/internal/infra/postgres"
	"gateway/internal/logger"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load(os.Getenv("ENVPATH"))
	if err != nil {
		panic("Can't load .env file: " + err.Error())
	}

	config := config.ReadConfig()
	config.DB = postgres.Init(config)

	unixLogger := logger.Init(config.Prod_env)

	natsinfra := nats.Init(config, unixLogger)

	app := &app.App{
		Config:    config,
		Db:        config.DB,
		NatsInfra: natsinfra,
		Log:       unixLogger,
	}

	app.Start()
}
