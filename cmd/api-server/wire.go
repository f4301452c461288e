//go:build wireinject
// +build wireinject

package main

import (
	"Libro/config"
	"Libro/dao"
	"Libro/handler"
	"Libro/pkg/client"
	"Libro/pkg/database"
	"Libro/pkg/server"
	"Libro/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(

		client.NewRedisClient,
		database.NewDB,
		server.NewGinEngine,

		wire.Struct(new(handler.AuthHandler), "*"),
		wire.Struct(new(handler.BookHandler), "*"),
		wire.Struct(new(handler.RelationHandler), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),

		dao.ProviderSet,
		service.ProviderSet,
	)
	return nil
}
