package services

import (
	"html/template"
	"log"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// RenderService renders template fragments and upstream markdown text.
type RenderService struct {
	templates *template.Template
}

// NewRenderService creates a render service over parsed templates.
func NewRenderService(templates *template.Template) *RenderService {
	return &RenderService{templates: templates}
}

// Fragment executes a named fragment template and returns the HTML, with
// an inline error block as the fallback so one bad fragment cannot blank
// a page.
func (s *RenderService) Fragment(name string, data interface{}) template.HTML {
	var buf strings.Builder
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("[ERROR] failed to render fragment %s: %v", name, err)
		return template.HTML(`<div class="fragment-error">Error rendering fragment</div>`)
	}
	return template.HTML(buf.String())
}

// Markdown renders upstream analysis text (problem statements, solution
// notes) as sanitized-enough HTML: raw HTML blocks in the source are
// skipped rather than passed through.
func (s *RenderService) Markdown(source string) template.HTML {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.SkipHTML,
	})
	rendered := markdown.ToHTML([]byte(source), p, renderer)
	return template.HTML(rendered)
}
