// Package main boots the user-directory API server.
//
// @title                      User Directory API
// @version                    0.2
// @description                User CRUD, block relations and cached search.
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"

	"github.com/mileusna/crontab"

	"loopware.io/user-directory/app/domain/healthcheck"
	"loopware.io/user-directory/app/interfaces/http"
	"loopware.io/user-directory/config/environment_variables"
	_ "loopware.io/user-directory/docs"
)

type Application struct {
	HttpServer  *http.HttpServer
	Healthcheck *healthcheck.Service
}

func (application *Application) Start() {
	if err := application.HttpServer.Run(); err != nil {
		panic(err)
	}
}

func init() {
	environment_variables.EnvironmentVariables.LoadFromEnv()
}

func main() {
	application, err := CreateApplication()
	if err != nil {
		panic(err)
	}

	cron := crontab.New()
	application.Healthcheck.Start(context.Background(), cron)

	application.Start()
}
