package greeting

// Message is the body of every greeting response.
type Message struct {
	Message string `json:"message" doc:"Static greeting text" example:"Hello, world!"`
}

// Output wraps Message as a huma response body.
type Output struct {
	Body Message
}
