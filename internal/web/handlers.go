package web

import (
	"AzureOpenAIStudio/internal/ai"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type apiRequest struct {
	Prompt string `json:"prompt"`
}

type apiResponse struct {
	Kind   ai.Kind `json:"kind"`
	Output string  `json:"output"`
	Error  bool    `json:"error"`
}

// activate выполняет одно нажатие кнопки: промпт уходит как есть, без проверок на клиенте.
func (s *Server) activate(ctx context.Context, kind ai.Kind, prompt string) ai.Result {
	id := uuid.NewString()
	start := time.Now()
	s.logger.Debugw("Activation started", "id", id, "kind", kind, "prompt", prompt)

	res := ai.Run(ctx, s.gen, kind, prompt)

	dur := time.Since(start)
	if res.Failed() {
		s.logger.Warnw("Activation failed", "id", id, "kind", kind, "prompt_len", len(prompt), "duration", dur.String(), "error", res.Err)
	} else {
		s.logger.Infow("Activation done", "id", id, "kind", kind, "prompt_len", len(prompt), "duration", dur.String())
	}
	return res
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	tab := ai.KindChat
	if k, err := ai.ParseKind(r.URL.Query().Get("tab")); err == nil {
		tab = k
	}
	s.render(w, pageData{ActiveTab: tab})
}

// handleForm обслуживает отправку формы вкладки и перерисовывает страницу с результатом.
func (s *Server) handleForm(kind ai.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "failed to parse form", http.StatusBadRequest)
			return
		}
		prompt := r.PostForm.Get("prompt")
		res := s.activate(r.Context(), kind, prompt)
		s.render(w, newPageData(kind, prompt, res))
	}
}

func (s *Server) handleAPI(kind ai.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req apiRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPromptBytes)).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
		res := s.activate(r.Context(), kind, req.Prompt)
		// Ошибка сервиса отдаётся тем же ответом, что и успех: её показывают в виджете вывода
		writeJSON(w, http.StatusOK, apiResponse{Kind: kind, Output: res.Display(), Error: res.Failed()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
