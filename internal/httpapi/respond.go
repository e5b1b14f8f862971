package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/VitaminP8/storyline/internal/apperr"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type messageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, messageResponse{Message: message})
}

// respondErr переводит ошибку в HTTP статус. Текст внутренних ошибок
// только логируется, клиент получает "Server error"
func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		respondError(w, status, "Server error")
		return
	}
	respondError(w, status, apperr.Message(err, http.StatusText(status)))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation), errors.Is(err, apperr.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// pathID читает числовой id из пути. Нечисловой id - такой записи нет
func pathID(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, strconv.IntSize)
	if err != nil || id == 0 {
		return 0, apperr.NotFound("Not found")
	}
	return uint(id), nil
}

// pathParam возвращает раскодированный сегмент пути. Роутер матчит по
// закодированному пути, поэтому %2F внутри тега или имени не режет маршрут
func pathParam(r *http.Request, name string) (string, error) {
	value, err := url.PathUnescape(mux.Vars(r)[name])
	if err != nil {
		return "", apperr.NotFound("Not found")
	}
	return value, nil
}
