package routes

import (
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/huma-users/internal/http/v1/users"
	usersvc "github.com/janisto/huma-users/internal/service/user"
)

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API, userService usersvc.Service) {
	users.Register(api, userService, apiPrefix(api))
}

func apiPrefix(api huma.API) string {
	for _, s := range api.OpenAPI().Servers {
		if u, err := url.Parse(s.URL); err == nil && u.Path != "" {
			return u.Path
		}
	}
	return ""
}
