package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/npezzotti/go-clubs/internal/blob"
	"github.com/npezzotti/go-clubs/internal/server"
	"github.com/npezzotti/go-clubs/internal/types"
)

const (
	maxBannerSize     = 10 << 20
	multipartOverhead = 1 << 20
	multipartMemory   = 1 << 20
	sniffLen          = 512
	maxJsonBody       = 1 << 20
	pingTimeout       = 2 * time.Second
)

func (s *App) writeJson(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Errorw("json encode", "error", err)
	}
}

func (s *App) writeError(w http.ResponseWriter, r *http.Request, err error) {
	errResp := errorResponse(err)
	if errResp.StatusCode == http.StatusInternalServerError {
		s.log.Errorw("request failed",
			"request_id", RequestId(r.Context()),
			"method", r.Method,
			"uri", r.RequestURI,
			"error", err,
		)
	}
	s.writeJson(w, errResp.StatusCode, errResp)
}

func (s *App) badRequest(w http.ResponseWriter) {
	errResp := NewBadRequestError()
	s.writeJson(w, errResp.StatusCode, errResp)
}

func decodeJson[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	body := http.MaxBytesReader(w, r.Body, maxJsonBody)
	if err := json.NewDecoder(body).Decode(&v); err != nil {
		return v, false
	}
	return v, true
}

// pathId parses the {id} route parameter. Ids are positive integers.
func pathId(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (s *App) healthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		s.log.Errorw("health check failed", "error", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *App) upsertUser(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJson[UserRequest](w, r)
	if !ok || !req.valid() {
		s.badRequest(w)
		return
	}

	user, err := s.svc.Users.Upsert(r.Context(), req.user())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJson(w, http.StatusOK, user)
}

func (s *App) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.svc.Users.Resolve(r.Context(), chi.URLParam(r, "clerkId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJson(w, http.StatusOK, user)
}

func (s *App) listClubs(w http.ResponseWriter, r *http.Request) {
	clubs, err := s.svc.Clubs.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJson(w, http.StatusOK, clubs)
}

func (s *App) getClub(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(r)
	if !ok {
		s.badRequest(w)
		return
	}

	club, err := s.svc.Clubs.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJson(w, http.StatusOK, club)
}

func (s *App) createClub(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJson[ClubRequest](w, r)
	if !ok || !req.valid() {
		s.badRequest(w)
		return
	}

	clerkId, _ := ClerkId(r.Context())
	club, err := s.svc.Clubs.Create(r.Context(), req.club(), clerkId)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJson(w, http.StatusOK, club)
}

func (s *App) updateClub(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(r)
	if !ok {
		s.badRequest(w)
		return
	}

	req, ok := decodeJson[ClubRequest](w, r)
	if !ok || !req.valid() {
		s.badRequest(w)
		return
	}

	clerkId, _ := ClerkId(r.Context())
	club, err := s.svc.Clubs.Update(r.Context(), id, req.club(), clerkId)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJson(w, http.StatusOK, club)
}

func (s *App) deleteClub(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(r)
	if !ok {
		s.badRequest(w)
		return
	}

	clerkId, _ := ClerkId(r.Context())
	if err := s.svc.Clubs.Delete(r.Context(), id, clerkId); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJson(w, http.StatusNoContent, nil)
}

func (s *App) updateBanner(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(r)
	if !ok {
		s.badRequest(w)
		return
	}

	if r.ContentLength > maxBannerSize+multipartOverhead {
		errResp := NewRequestTooLargeError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBannerSize+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			errResp := NewRequestTooLargeError()
			s.writeJson(w, errResp.StatusCode, errResp)
			return
		}
		s.badRequest(w)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.badRequest(w)
		return
	}
	defer file.Close()

	if header.Size > maxBannerSize {
		errResp := NewRequestTooLargeError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	contentType, body, err := imageContent(file, header.Header.Get("Content-Type"))
	if err != nil {
		errResp := NewUnsupportedMediaTypeError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	clerkId, _ := ClerkId(r.Context())
	meta := blob.Metadata{
		Name:        header.Filename,
		ContentType: contentType,
		Size:        header.Size,
	}

	club, err := s.svc.Clubs.UpdateBanner(r.Context(), id, body, meta, clerkId)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJson(w, http.StatusOK, club)
}

var errNotImage = errors.New("content is not an image")

// imageContent sniffs the leading bytes of an upload and returns the
// detected type. Only raster image formats pass; a declared type must
// still be an image or absent.
func imageContent(file io.Reader, declared string) (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, err
	}
	head = head[:n]

	declared = strings.ToLower(strings.TrimSpace(declared))
	if declared != "" && declared != "application/octet-stream" && !strings.HasPrefix(declared, "image/") {
		return "", nil, errNotImage
	}

	contentType := http.DetectContentType(head)
	if !blob.IsImageType(contentType) {
		return "", nil, errNotImage
	}

	return contentType, io.MultiReader(bytes.NewReader(head), file), nil
}

func (s *App) serveUpload(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	if !blob.ValidRef(ref) {
		errResp := NewNotFoundError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	rc, meta, err := s.blobs.Open(r.Context(), ref)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer rc.Close()

	contentType := meta.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if meta.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(meta.Size, 10))
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, rc); err != nil {
		s.log.Warnw("failed to stream upload", "ref", ref, "error", err)
	}
}

func (s *App) listBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.svc.Books.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJson(w, http.StatusOK, books)
}

func (s *App) getBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(r)
	if !ok {
		s.badRequest(w)
		return
	}

	book, err := s.svc.Books.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJson(w, http.StatusOK, book)
}

func (s *App) createBook(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJson[BookRequest](w, r)
	if !ok || !req.valid() {
		s.badRequest(w)
		return
	}

	clerkId, _ := ClerkId(r.Context())
	book, err := s.svc.Books.Create(r.Context(), req.book(), clerkId)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJson(w, http.StatusOK, book)
}

func (s *App) updateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(r)
	if !ok {
		s.badRequest(w)
		return
	}

	req, ok := decodeJson[BookRequest](w, r)
	if !ok || !req.valid() {
		s.badRequest(w)
		return
	}

	clerkId, _ := ClerkId(r.Context())
	book, err := s.svc.Books.Update(r.Context(), id, req.book(), clerkId)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJson(w, http.StatusOK, book)
}

func (s *App) deleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(r)
	if !ok {
		s.badRequest(w)
		return
	}

	clerkId, _ := ClerkId(r.Context())
	if err := s.svc.Books.Delete(r.Context(), id, clerkId); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJson(w, http.StatusNoContent, nil)
}

func (s *App) listMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.svc.Messages.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJson(w, http.StatusOK, msgs)
}

func (s *App) createMessage(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJson[MessageRequest](w, r)
	if !ok || !req.valid() {
		s.badRequest(w)
		return
	}

	clerkId, _ := ClerkId(r.Context())
	msg, err := s.svc.Messages.Create(r.Context(), types.Message{Content: req.Content}, clerkId)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJson(w, http.StatusOK, msg)
}

func (s *App) serveWs(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			// only allow connections from allowed origins
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}

			return slices.Contains(s.allowedOrigins, origin)
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnw("error upgrading connection", "error", err)
		return
	}

	client := server.NewClient(conn, s.hub, s.log)
	if err := s.hub.Register(client); err != nil {
		s.log.Warnw("rejecting websocket client", "error", err)
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
		return
	}

	go client.Write()
	go client.Read()
}
