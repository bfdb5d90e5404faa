package notification

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRenderer_Bundled(t *testing.T) {
	renderer, err := NewTemplateRenderer(nil, "")
	require.NoError(t, err)

	for _, topic := range DefaultTopics() {
		assert.NotNil(t, renderer.templates.Lookup(topic.Template), topic.Template)
	}

	html, err := renderer.Render("customer_completed_credit_app.html", RenderContext{
		"FirstName": "Jane",
		"LastName":  "Doe",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Thanks, Jane Doe")
}

func TestTemplateRenderer_CustomFS(t *testing.T) {
	fsys := fstest.MapFS{
		"mail/hello.html": {Data: []byte(`<p>Hello {{.Name}}</p>`)},
	}
	renderer, err := NewTemplateRenderer(fsys, "mail")
	require.NoError(t, err)

	html, err := renderer.Render("hello.html", RenderContext{"Name": "<b>Bob</b>"})
	require.NoError(t, err)
	// html/template escapes values
	assert.Equal(t, "<p>Hello &lt;b&gt;Bob&lt;/b&gt;</p>", html)

	_, err = renderer.Render("missing.html", RenderContext{})
	assert.Error(t, err)
}
