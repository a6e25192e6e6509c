//go:build wireinject

package main

import (
	"github.com/google/wire"

	"loopware.io/user-directory/app/domain"
	"loopware.io/user-directory/app/infrastructure"
	"loopware.io/user-directory/app/infrastructure/database/repository"
	"loopware.io/user-directory/app/interfaces/http"
	"loopware.io/user-directory/app/interfaces/http/routes"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		infrastructure.InfrastructureProvider,
		repository.RepositoryProvider,
		domain.ServiceProvider,
		routes.RouteProvider,
		http.NewHttpServer,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
