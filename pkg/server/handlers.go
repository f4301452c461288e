package server

import (
	"Libro/handler"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Book     *handler.BookHandler
	Relation *handler.RelationHandler
}
