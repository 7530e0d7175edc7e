package docs

import (
	"github.com/juju/errors"
	"github.com/wI2L/fizz/openapi"
)

// SecuritySchemeName is the name of the documented OAuth2 scheme
const SecuritySchemeName = "security_auth"

// SecuritySchemeDescription tells clients how requests are authenticated at runtime
const SecuritySchemeDescription = "OAuth2 client credentials issued by the identity provider. " +
	"The API itself does not introspect bearer tokens: it expects HTTP Basic credentials, " +
	"or the x-remote-user header set by the authenticating gateway, " +
	"and answers 401 to a request carrying a bearer token only."

// Document is the API document served to clients: the fizz document,
// plus the security declarations fizz does not model.
type Document struct {
	*openapi.OpenAPI
	Components *Components           `json:"components,omitempty" yaml:"components,omitempty"`
	Security   []SecurityRequirement `json:"security,omitempty" yaml:"security,omitempty"`
}

// Components extends the fizz components with security schemes
// and property examples
type Components struct {
	*openapi.Components
	Schemas         map[string]*Schema         `json:"schemas,omitempty" yaml:"schemas,omitempty"`
	SecuritySchemes map[string]*SecurityScheme `json:"securitySchemes,omitempty" yaml:"securitySchemes,omitempty"`
}

// SecurityRequirement maps a security scheme name to the scopes it requires
type SecurityRequirement map[string][]string

// SecurityScheme describes how clients authenticate
type SecurityScheme struct {
	Type        string      `json:"type" yaml:"type"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Flows       *OAuthFlows `json:"flows,omitempty" yaml:"flows,omitempty"`
}

// OAuthFlows lists the supported OAuth2 flows
type OAuthFlows struct {
	ClientCredentials *OAuthFlow `json:"clientCredentials,omitempty" yaml:"clientCredentials,omitempty"`
}

// OAuthFlow holds the endpoints of an OAuth2 flow
type OAuthFlow struct {
	AuthorizationURL string            `json:"authorizationUrl,omitempty" yaml:"authorizationUrl,omitempty"`
	TokenURL         string            `json:"tokenUrl" yaml:"tokenUrl"`
	Scopes           map[string]string `json:"scopes" yaml:"scopes"`
}

// Options configures Build
type Options struct {
	Info *openapi.Info
	// OAuth is the client-credentials flow of the security scheme
	OAuth OAuthFlow
	// Examples are attached to the media types whose schema
	// refers to the component of the same name, and their fields
	// to the properties of that component
	Examples map[string]interface{}
}

// Build assembles the served document from the routes documented by gen.
// The operations are shared with gen and enriched in place, so Build is
// meant to run once, after every route is registered.
func Build(gen *openapi.Generator, opts Options) (*Document, error) {
	api := gen.API()

	info := opts.Info
	if info == nil {
		info = api.Info
	}
	api.Info = info

	components := copyComponents(api.Components)
	schemas, err := ProblemSchemas()
	if err != nil {
		return nil, err
	}
	for name, s := range schemas {
		components.Schemas[name] = s
	}
	for name, r := range ResponseCatalog() {
		components.Responses[name] = r
	}
	api.Components = components

	Enrich(api.Paths)
	ApplyExamples(api.Paths, opts.Examples)

	schemaDocs, err := SchemasWithExamples(components.Schemas, opts.Examples)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		OpenAPI: api,
		Components: &Components{
			Components: components,
			Schemas:    schemaDocs,
			SecuritySchemes: map[string]*SecurityScheme{
				SecuritySchemeName: oauthScheme(opts.OAuth),
			},
		},
		Security: []SecurityRequirement{{SecuritySchemeName: []string{}}},
	}
	if err := Check(doc); err != nil {
		return nil, errors.Annotate(err, "invalid API document")
	}
	return doc, nil
}

func oauthScheme(flow OAuthFlow) *SecurityScheme {
	if flow.Scopes == nil {
		flow.Scopes = map[string]string{}
	}
	return &SecurityScheme{
		Type:        "oauth2",
		Description: SecuritySchemeDescription,
		Flows:       &OAuthFlows{ClientCredentials: &flow},
	}
}

// copyComponents returns components with its own maps,
// leaving the generator's registries untouched
func copyComponents(c *openapi.Components) *openapi.Components {
	cpy := &openapi.Components{
		Schemas:    make(map[string]*openapi.SchemaOrRef),
		Responses:  make(map[string]*openapi.ResponseOrRef),
		Parameters: make(map[string]*openapi.ParameterOrRef),
		Examples:   make(map[string]*openapi.ExampleOrRef),
		Headers:    make(map[string]*openapi.HeaderOrRef),
	}
	if c == nil {
		return cpy
	}
	for k, v := range c.Schemas {
		cpy.Schemas[k] = v
	}
	for k, v := range c.Responses {
		cpy.Responses[k] = v
	}
	for k, v := range c.Parameters {
		cpy.Parameters[k] = v
	}
	for k, v := range c.Examples {
		cpy.Examples[k] = v
	}
	for k, v := range c.Headers {
		cpy.Headers[k] = v
	}
	return cpy
}
