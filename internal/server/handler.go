package server

import (
	"PostGenius/internal/service/post"
	"encoding/json"
	"errors"
	"net/http"
)

// Сообщения для пользователя
const (
	msgMissingInput     = "Image et ton requis."
	msgInvalidTone      = "Ton invalide."
	msgBodyTooLarge     = "Image trop volumineuse."
	msgGenerationFailed = "Erreur lors de la génération du post."
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed; use POST", http.StatusMethodNotAllowed)
		return
	}
	logger := loggerFrom(r.Context(), s.logger)

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	defer r.Body.Close()

	var req post.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.Infow("Тело запроса слишком большое", "limit", tooLarge.Limit)
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: msgBodyTooLarge})
			return
		}
		logger.Infow("Некорректное тело запроса", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgMissingInput})
		return
	}

	res, err := s.generator.Generate(r.Context(), req)
	switch {
	case errors.Is(err, post.ErrMissingInput):
		logger.Infow("Запрос без изображения или тона",
			"has_image", req.Image != "",
			"has_tone", req.Tone != "",
		)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgMissingInput})
	case errors.Is(err, post.ErrInvalidTone):
		logger.Infow("Неизвестный тон", "tone", req.Tone)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgInvalidTone})
	case err != nil:
		logger.Errorw("Ошибка генерации поста", "tone", req.Tone, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgGenerationFailed})
	default:
		writeJSON(w, http.StatusOK, res)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
