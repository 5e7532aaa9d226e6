package docs

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var templateToken = regexp.MustCompile(`\{\{[^}]*\}\}`)

// renderedTemplate substitutes the swag template tokens so the document can
// be parsed as plain JSON.
func renderedTemplate(t *testing.T) map[string]json.RawMessage {
	t.Helper()

	rendered := strings.Replace(docTemplate, "{{ marshal .Schemes }}", `["http"]`, 1)
	rendered = templateToken.ReplaceAllString(rendered, "x")

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(rendered), &doc))
	return doc
}

func TestDocTemplateContainsAllRoutes(t *testing.T) {
	doc := renderedTemplate(t)

	var paths map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(doc["paths"], &paths))
	require.NotEmpty(t, paths)

	for path, want := range map[string][]string{
		"/auth/login":                         {"post"},
		"/auth/change-password":               {"post"},
		"/sewadars":                           {"get", "post"},
		"/sewadars/{zonalId}":                 {"get", "put", "delete"},
		"/programs":                           {"get", "post"},
		"/programs/{id}":                      {"get", "put", "delete"},
		"/programs/{id}/status":               {"patch"},
		"/programs/{id}/applications":         {"get", "post"},
		"/applications/{id}/decision":         {"patch"},
		"/applications/{id}/approve-drop":     {"post"},
		"/programs/{id}/workflow/next-node":   {"post"},
		"/workflows/notify-daily":             {"post"},
		"/form-submissions/{id}":              {"put"},
		"/attendances/{id}":                   {"put"},
		"/notification-preferences":           {"get"},
		"/programs/{id}/notification-preferences/{nodeNumber}": {"put"},
		"/dashboard/sewadars": {"get"},
	} {
		require.Contains(t, paths, path)
		for _, method := range want {
			assert.Contains(t, paths[path], method, "%s %s", method, path)
		}
	}
}

func TestDocTemplateDefinitionsResolve(t *testing.T) {
	doc := renderedTemplate(t)

	var definitions map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(doc["definitions"], &definitions))
	require.NotEmpty(t, definitions)

	refs := regexp.MustCompile(`"\$ref":\s*"#/definitions/([^"]+)"`).
		FindAllStringSubmatch(docTemplate, -1)
	require.NotEmpty(t, refs)
	for _, ref := range refs {
		assert.Contains(t, definitions, ref[1])
	}
}
