// Package api builds the huma configuration shared by the server and handler tests.
package api

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/go-microservice/internal/platform/format"
)

// NewConfig returns a huma config that serves only registered operations: the
// OpenAPI, docs and schema routes are disabled, and no $schema property or Link
// header is added to bodies. Responses are compact JSON by default and CBOR on
// request. The OpenAPI document is still built in memory.
func NewConfig(title, version string) huma.Config {
	cfg := huma.DefaultConfig(title, version)
	cfg.OpenAPIPath = ""
	cfg.DocsPath = ""
	cfg.SchemasPath = ""
	// The default create hook installs the schema link transformer.
	cfg.CreateHooks = nil
	cfg.Formats = format.Formats()
	cfg.DefaultFormat = format.ContentTypeJSON
	cfg.OpenAPI.OnAddOperation = append(cfg.OpenAPI.OnAddOperation, MirrorCBOR)
	return cfg
}

// MirrorCBOR documents application/cbor next to every application/json body of an operation.
func MirrorCBOR(_ *huma.OpenAPI, op *huma.Operation) {
	if op.RequestBody != nil && op.RequestBody.Content != nil {
		if jsonContent, ok := op.RequestBody.Content[format.ContentTypeJSON]; ok {
			op.RequestBody.Content[format.ContentTypeCBOR] = jsonContent
		}
	}
	for _, resp := range op.Responses {
		if resp.Content == nil {
			continue
		}
		if jsonContent, ok := resp.Content[format.ContentTypeJSON]; ok {
			resp.Content[format.ContentTypeCBOR] = jsonContent
		}
	}
}
