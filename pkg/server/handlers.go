package server

import (
	"Mingle/handler"
)

type Handlers struct {
	Auth     *handler.Auth
	Profile  *handler.Profile
	Feed     *handler.Feed
	Relation *handler.Relation
	Upload   *handler.Upload
}
