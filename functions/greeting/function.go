// Package greeting serves the welcome and hello routes as an HTTP Cloud Function.
package greeting

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
)

const (
	defaultServiceName = "Go Microservice"
	helloMessage       = "Hello, world!"
)

func init() {
	functions.HTTP("Greeting", Handler(serviceName()))
}

// Message is the response body of every route.
type Message struct {
	Message string `json:"message"`
}

func serviceName() string {
	if name := os.Getenv("SERVICE_NAME"); name != "" {
		return name
	}
	return defaultServiceName
}

// Handler routes on the request path only. Method, query and body are ignored.
func Handler(name string) http.HandlerFunc {
	welcome := "Welcome to the " + name + "!"
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			writeJSON(w, http.StatusOK, Message{Message: welcome})
		case "/hello":
			writeJSON(w, http.StatusOK, Message{Message: helloMessage})
		default:
			writeJSON(w, http.StatusNotFound, Message{Message: "Not Found"})
		}
	}
}

// writeJSON writes compact JSON without HTML escaping or a trailing newline, the
// same bytes the container service produces.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}
