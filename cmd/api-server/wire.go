//go:build wireinject
// +build wireinject

package main

import (
	"Mingle/config"
	"Mingle/dao"
	"Mingle/dao/cache"
	"Mingle/handler"
	"Mingle/pkg/client"
	"Mingle/pkg/database"
	"Mingle/pkg/server"
	"Mingle/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) (*server.AppProvider, func(), error) {
	wire.Build(
		database.NewDB,
		client.NewRedisClient,
		config.ProvideOssConfig,
		server.NewGinEngine,

		dao.ProviderSet,
		cache.ProviderSet,
		service.ProviderSet,

		wire.Struct(new(handler.Auth), "*"),
		wire.Struct(new(handler.Profile), "*"),
		wire.Struct(new(handler.Feed), "*"),
		wire.Struct(new(handler.Relation), "*"),
		wire.Struct(new(handler.Upload), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),
	)
	return nil, nil, nil
}
