package web

import (
	"AzureOpenAIStudio/internal/ai"
	"embed"
	"html/template"
	"net/http"
)

const maxPromptBytes = 1 << 20

//go:embed templates/index.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// pageData состояние обеих вкладок для одного рендера страницы.
type pageData struct {
	ActiveTab ai.Kind

	ChatPrompt string
	ChatOutput string

	ImagePrompt string
	ImageURL    string
	ImageError  string
}

func newPageData(kind ai.Kind, prompt string, res ai.Result) pageData {
	d := pageData{ActiveTab: kind}
	switch kind {
	case ai.KindChat:
		d.ChatPrompt = prompt
		d.ChatOutput = res.Display()
	case ai.KindImage:
		d.ImagePrompt = prompt
		if res.Failed() {
			d.ImageError = res.Display()
		} else {
			d.ImageURL = res.Value
		}
	}
	return d
}

func (s *Server) render(w http.ResponseWriter, d pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, d); err != nil {
		s.logger.Errorw("failed to render page", "error", err)
	}
}
