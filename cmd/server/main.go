package main

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"

	"pdf-agent/internal/di"
	"pdf-agent/internal/domain/entity"
	"pdf-agent/internal/infrastructure/env"
)

const maxUploadBytes = 50 << 20

type server struct {
	container *di.Container
}

func main() {
	envService := env.NewEnvService()

	addr := envService.GetDefault("HTTP_ADDR", ":8080")
	container, err := di.NewContainer(di.Config{
		Provider:      envService.GetDefault("LLM_PROVIDER", "anthropic"),
		APIKey:        envService.MustGet("LLM_API_KEY"),
		Model:         envService.MustGet("LLM_MODEL_NAME"),
		BaseURL:       envService.Get("LLM_BASE_URL"),
		DataDir:       envService.GetDefault("DATA_DIR", "data"),
		PublicBaseURL: envService.Get("PUBLIC_BASE_URL"),
		LogName:       "server",
	})
	if err != nil {
		log.Fatalf("init failed: %v", err)
	}
	defer container.Close()

	s := &server{container: container}

	httpLogger := httplog.NewLogger("pdf-agent", httplog.Options{
		JSON:    true,
		Concise: true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(httpLogger))
	r.Use(middleware.Recoverer)

	r.Post("/api/sessions/{session}/documents", s.handleUpload)
	r.Post("/api/sessions/{session}/chat", s.handleChat)
	r.Get("/api/sessions/{session}/documents", s.handleListDocuments)
	r.Get("/files/{name}", s.handleFile)

	container.Logger.Info("Server listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func (s *server) handleUpload(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session")

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "expected multipart form with a 'file' field")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing 'file' field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	doc, err := s.container.UploadOriginal(r.Context(), sessionID, header.Filename, data)
	if err != nil {
		s.container.Logger.Error("Upload failed", "session", sessionID, "error", err)
		writeError(w, http.StatusUnprocessableEntity, "not a readable PDF")
		return
	}

	writeJSON(w, http.StatusCreated, docView(doc))
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply        string                 `json:"reply"`
	Operations   []operationView        `json:"operations"`
	Documents    []map[string]any       `json:"documents"`
	Events       []entity.AgentLogEvent `json:"events"`
	LimitReached bool                   `json:"limitReached"`
}

type operationView struct {
	Tool    string `json:"tool"`
	Success bool   `json:"success"`
}

func (s *server) handleChat(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session")

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeError(w, http.StatusBadRequest, "expected JSON body with a non-empty 'message'")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Minute)
	defer cancel()

	var events []entity.AgentLogEvent
	result := s.container.Chat(ctx, sessionID, req.Message, func(ev entity.AgentLogEvent) {
		events = append(events, ev)
	})

	resp := chatResponse{
		Reply:        result.FinalText,
		Operations:   make([]operationView, 0, len(result.Operations)),
		Documents:    make([]map[string]any, 0, len(result.Documents)),
		Events:       events,
		LimitReached: result.LimitReached,
	}
	for _, op := range result.Operations {
		resp.Operations = append(resp.Operations, operationView{Tool: op.ToolName.String(), Success: op.Success})
	}
	for _, doc := range result.Documents {
		resp.Documents = append(resp.Documents, docView(doc))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session")

	docs := s.container.Sessions.Documents(sessionID)
	views := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		views = append(views, docView(doc))
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": views})
}

func (s *server) handleFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, s.container.Storage.Path(name))
}

func docView(doc entity.Document) map[string]any {
	return map[string]any{
		"id":        doc.ID,
		"name":      doc.Name,
		"url":       doc.URL,
		"kind":      string(doc.Kind),
		"pages":     doc.Pages,
		"pageCount": doc.PageCount,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
