package dashboard

import (
	"embed"
	"html/template"

	"perfdash/internal/errors"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

//go:embed content/*.md
var content embed.FS

// Narrative is the static prose around the charts, pre-rendered to HTML
type Narrative struct {
	Intro      template.HTML
	Conclusion template.HTML
}

// LoadNarrative renders the embedded intro and conclusion documents
func LoadNarrative() (*Narrative, error) {
	intro, err := renderDocument("content/intro.md")
	if err != nil {
		return nil, err
	}
	conclusion, err := renderDocument("content/conclusion.md")
	if err != nil {
		return nil, err
	}
	return &Narrative{Intro: intro, Conclusion: conclusion}, nil
}

func renderDocument(name string) (template.HTML, error) {
	src, err := content.ReadFile(name)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read narrative %s", name)
	}
	return RenderMarkdown(src), nil
}

// RenderMarkdown converts trusted Markdown to HTML. Parsers are single use, so
// one is built per call.
func RenderMarkdown(src []byte) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return template.HTML(markdown.ToHTML(src, p, r))
}
