//go:build wireinject

package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewTransactor,
	NewUserDAO,
	NewProfileDAO,
	NewProfileInterestDAO,
	NewProfileLikeDAO,
	NewUserFollowDAO,
)
