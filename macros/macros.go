package macros

import (
	"bytes"
	"text/template"
)

// EndpointTemplateParams specifies params for an endpoint template
type EndpointTemplateParams struct {
	Host      string
	AdUnit    string
	AccountID string
}

// ResolveMacros resolves macros in the given template with the provided params.
// Values are substituted verbatim; text/template applies no URL encoding.
func ResolveMacros(aTemplate *template.Template, params interface{}) (string, error) {
	strBuf := bytes.Buffer{}

	if err := aTemplate.Execute(&strBuf, params); err != nil {
		return "", err
	}

	return strBuf.String(), nil
}
