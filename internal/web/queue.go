package web

import (
	"AzureOpenAIStudio/internal/ai"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

type queueRequest struct {
	Kind   string `json:"kind"`
	Prompt string `json:"prompt"`
}

// handleQueue принимает промпты по websocket. Кадры одного соединения обрабатываются по очереди,
// ответ на каждый кадр приходит в том же порядке.
func (s *Server) handleQueue(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warnw("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxPromptBytes)

	ctx := r.Context()
	for {
		var req queueRequest
		if err := conn.ReadJSON(&req); err != nil {
			var closeErr *websocket.CloseError
			if !errors.As(err, &closeErr) {
				s.logger.Debugw("websocket read stopped", "remote", r.RemoteAddr, "error", err)
			}
			return
		}

		resp := apiResponse{Kind: ai.Kind(req.Kind)}
		if kind, err := ai.ParseKind(req.Kind); err != nil {
			resp.Output = ai.Result{Err: err}.Display()
			resp.Error = true
		} else {
			res := s.activate(ctx, kind, req.Prompt)
			resp.Output = res.Display()
			resp.Error = res.Failed()
		}

		if err := conn.WriteJSON(resp); err != nil {
			s.logger.Warnw("websocket write failed", "remote", r.RemoteAddr, "error", err)
			return
		}
	}
}
