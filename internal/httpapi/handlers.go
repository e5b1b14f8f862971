package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/VitaminP8/storyline/internal/apperr"
	"github.com/VitaminP8/storyline/internal/service"
)

// multipartMemory - сколько multipart формы держим в памяти, остальное уходит во временные файлы
const multipartMemory = 8 << 20

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, messageResponse{Message: "API is running"})
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	res, err := h.svc.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, res)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *Handler) handleListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.svc.ListArticles(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, articles)
}

func (h *Handler) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	article, err := h.svc.GetArticle(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, article)
}

func (h *Handler) handleArticlesByTag(w http.ResponseWriter, r *http.Request) {
	tag, err := pathParam(r, "tag")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	articles, err := h.svc.ArticlesByTag(r.Context(), tag)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, articles)
}

func (h *Handler) handleArticlesByUser(w http.ResponseWriter, r *http.Request) {
	username, err := pathParam(r, "username")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	articles, err := h.svc.ArticlesByUser(r.Context(), username)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, articles)
}

func (h *Handler) handleTags(w http.ResponseWriter, r *http.Request) {
	all, err := h.svc.Tags(r.Context())
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, all)
}

func (h *Handler) handleCreateArticle(w http.ResponseWriter, r *http.Request) {
	in, cleanup, err := h.decodeArticle(w, r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	defer cleanup()

	article, err := h.svc.CreateArticle(r.Context(), in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, article)
}

func (h *Handler) handleUpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	in, cleanup, err := h.decodeArticle(w, r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	defer cleanup()

	article, err := h.svc.UpdateArticle(r.Context(), id, in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, article)
}

func (h *Handler) handleDeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	if err := h.svc.DeleteArticle(r.Context(), id); err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, messageResponse{Message: "Article deleted"})
}

func (h *Handler) handleListComments(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathID(r, "articleId")
	if err != nil {
		// у несуществующей статьи комментариев нет
		respondJSON(w, http.StatusOK, []struct{}{})
		return
	}

	comments, err := h.svc.ListComments(r.Context(), articleID)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, comments)
}

type commentRequest struct {
	Text string `json:"text"`
}

func (h *Handler) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathID(r, "articleId")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}

	comment, err := h.svc.CreateComment(r.Context(), articleID, req.Text)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, comment)
}

func (h *Handler) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}

	if err := h.svc.DeleteComment(r.Context(), id); err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, messageResponse{Message: "Comment deleted"})
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("Invalid request body")
	}
	return nil
}

// tagField принимает теги строкой "a, b" или массивом ["a", "b"]
type tagField string

func (t *tagField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = tagField(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("tags must be a string or a list of strings: %w", err)
	}
	*t = tagField(strings.Join(list, ","))
	return nil
}

type articleRequest struct {
	Title string    `json:"title"`
	Body  string    `json:"body"`
	Tags  *tagField `json:"tags"`
}

// decodeArticle читает статью из JSON или multipart формы (с файлом image).
// cleanup закрывает файл и удаляет временные файлы формы
func (h *Handler) decodeArticle(w http.ResponseWriter, r *http.Request) (service.ArticleInput, func(), error) {
	noop := func() {}

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		var req articleRequest
		if err := decodeJSON(r, &req); err != nil {
			return service.ArticleInput{}, noop, err
		}
		in := service.ArticleInput{Title: req.Title, Body: req.Body}
		if req.Tags != nil {
			tags := string(*req.Tags)
			in.Tags = &tags
		}
		return in, noop, nil
	}

	// запас сверху на текстовые поля формы
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return service.ArticleInput{}, noop, apperr.Validation("Image is too large")
		}
		return service.ArticleInput{}, noop, apperr.Validation("Invalid request body")
	}
	form := r.MultipartForm
	cleanup := func() { _ = form.RemoveAll() }

	// только поля формы: r.FormValue подмешал бы query string
	in := service.ArticleInput{
		Title: r.PostFormValue("title"),
		Body:  r.PostFormValue("body"),
	}
	if values, ok := form.Value["tags"]; ok {
		tags := strings.Join(values, ",")
		in.Tags = &tags
	}

	file, header, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return in, cleanup, nil
	case err != nil:
		cleanup()
		return service.ArticleInput{}, noop, apperr.Validation("Invalid image")
	}

	if header.Size > h.opts.MaxUploadBytes {
		_ = file.Close()
		cleanup()
		return service.ArticleInput{}, noop, apperr.Validation("Image is too large")
	}

	in.Image = &service.Upload{
		Filename:    header.Filename,
		ContentType: contentType(header),
		Size:        header.Size,
		Reader:      file,
	}
	return in, func() {
		_ = file.Close()
		cleanup()
	}, nil
}

func contentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
