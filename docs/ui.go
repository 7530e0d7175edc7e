package docs

import (
	"bytes"
	"html/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/juju/errors"
)

// Locations of the documentation
const (
	UIPath       = "/swagger-ui/index.html"
	SpecPath     = "/v3/api-docs"
	SpecYAMLPath = SpecPath + ".yaml"
)

// swaggerUIVersion is the swagger-ui distribution loaded by the UI page
const swaggerUIVersion = "4.15.5"

var uiTemplate = template.Must(template.New("swagger-ui").Funcs(sprig.FuncMap()).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{ .Title | trim }}</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@{{ .Version }}/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@{{ .Version }}/swagger-ui-bundle.js" crossorigin></script>
  <script>
    window.onload = function () {
      const ui = SwaggerUIBundle({
        url: {{ .SpecURL }},
        dom_id: "#swagger-ui",
        deepLinking: true,
      });
      ui.initOAuth({
        scopes: {{ .Scopes | keys | sortAlpha | join " " }},
        usePkceWithAuthorizationCodeGrant: false,
      });
    };
  </script>
</body>
</html>
`))

// UIPage renders the swagger-ui page browsing the document served at specURL
func UIPage(title, specURL string, scopes map[string]string) ([]byte, error) {
	dict := make(map[string]interface{}, len(scopes))
	for k, v := range scopes {
		dict[k] = v
	}
	var buf bytes.Buffer
	err := uiTemplate.Execute(&buf, map[string]interface{}{
		"Title":   title,
		"Version": swaggerUIVersion,
		"SpecURL": specURL,
		"Scopes":  dict,
	})
	if err != nil {
		return nil, errors.Annotate(err, "failed to render documentation UI")
	}
	return buf.Bytes(), nil
}
