package wire

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Access is the minimum caller level a route requires.
type Access int

const (
	Public Access = iota
	Authenticated
	Admin
)

func (a Access) String() string {
	switch a {
	case Authenticated:
		return "authenticated"
	case Admin:
		return "admin"
	default:
		return "public"
	}
}

// route is one row of the access policy table.
type route struct {
	method  string
	pattern string
	access  Access
	// limited routes pass through the rate limiter first
	limited bool
	handler http.HandlerFunc
}

type accessGuards struct {
	authenticated []func(http.Handler) http.Handler
	admin         []func(http.Handler) http.Handler
	limited       func(http.Handler) http.Handler
}

func mount(r chi.Router, table []route, guards accessGuards) {
	for _, rt := range table {
		var chain []func(http.Handler) http.Handler
		if rt.limited && guards.limited != nil {
			chain = append(chain, guards.limited)
		}
		switch rt.access {
		case Authenticated:
			chain = append(chain, guards.authenticated...)
		case Admin:
			chain = append(chain, guards.admin...)
		}
		r.With(chain...).Method(rt.method, rt.pattern, rt.handler)
	}
}
