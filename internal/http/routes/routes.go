// Package routes assembles the route table.
package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/go-microservice/internal/http/greeting"
)

// Register wires every route into api:
//
//	GET /       welcome message naming the service
//	GET /hello  "Hello, world!"
//
// Unmatched paths are left to the router's not-found handler.
func Register(api huma.API, serviceName string) {
	greeting.Register(api, serviceName)
}
