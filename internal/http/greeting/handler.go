// Package greeting serves the two static greeting routes.
package greeting

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/go-microservice/internal/config"
)

// HelloMessage is the body text of GET /hello.
const HelloMessage = "Hello, world!"

// WelcomeMessage is the body text of GET / for the named service.
func WelcomeMessage(serviceName string) string {
	if serviceName == "" {
		serviceName = config.DefaultServiceName
	}
	return fmt.Sprintf("Welcome to the %s!", serviceName)
}

// Register adds GET / and GET /hello. Both handlers ignore the request and return
// a constant message.
func Register(api huma.API, serviceName string) {
	welcome := WelcomeMessage(serviceName)

	huma.Register(api, huma.Operation{
		OperationID: "get-welcome",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Get the welcome message",
		Tags:        []string{"Greeting"},
	}, func(context.Context, *struct{}) (*Output, error) {
		return &Output{Body: Message{Message: welcome}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-hello",
		Method:      http.MethodGet,
		Path:        "/hello",
		Summary:     "Get the hello message",
		Tags:        []string{"Greeting"},
	}, getHello)
}

func getHello(context.Context, *struct{}) (*Output, error) {
	return &Output{Body: Message{Message: HelloMessage}}, nil
}
