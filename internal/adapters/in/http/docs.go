package http

import (
	"encoding/json"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

// specDoc serves a JSON rendering of the OpenAPI document to swag readers.
type specDoc struct {
	json string
}

func (d specDoc) ReadDoc() string { return d.json }

var registerDocsOnce sync.Once

// RegisterDocs makes doc available to echo-swagger under the default swag
// instance. swag panics on duplicate registration, so only the first call counts.
func RegisterDocs(doc *openapi3.T) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	registerDocsOnce.Do(func() {
		swag.Register(swag.Name, specDoc{json: string(data)})
	})
	return nil
}
