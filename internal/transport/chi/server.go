package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kovan-labs/chatdock/internal/domain"
	agentuc "github.com/kovan-labs/chatdock/internal/usecase/agent"
	chatuc "github.com/kovan-labs/chatdock/internal/usecase/chat"
	healthuc "github.com/kovan-labs/chatdock/internal/usecase/health"
	searchuc "github.com/kovan-labs/chatdock/internal/usecase/search"
	useruc "github.com/kovan-labs/chatdock/internal/usecase/user"
)

// Error codes returned in the "code" field of error responses.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeUserNotFound     = "user_not_found"
	codeChatNotFound     = "chat_not_found"
	codeAlreadyExists    = "already_exists"
	codeEmptyQuery       = "empty_query"
	codeAgentError       = "agent_provider_error"
	codeAgentDisabled    = "agent_not_configured"
	codeInternalError    = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the chat store over HTTP.
type Server struct {
	users         *useruc.Service
	chats         *chatuc.Service
	search        *searchuc.Service
	agent         *agentuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. agent may be nil when no provider is
// configured; the run-agent endpoint then answers 501.
func NewServer(
	users *useruc.Service,
	chats *chatuc.Service,
	search *searchuc.Service,
	agent *agentuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		users:  users,
		chats:  chats,
		search: search,
		agent:  agent,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrUserNotFound, http.StatusNotFound, codeUserNotFound),
		sentinelHandler(domain.ErrChatNotFound, http.StatusNotFound, codeChatNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, codeAlreadyExists),
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, codeEmptyQuery),
		sentinelHandler(domain.ErrEmptyTask, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrAgentProviderError, http.StatusBadGateway, codeAgentError),
	}
	return s
}

// Routes registers all API routes on r.
func (s *Server) Routes(r chi.Router) {
	r.Post("/users/", s.CreateUser)
	r.Get("/users/{user_id}", s.GetUser)
	r.Get("/users/{user_id}/chats", s.ListUserChats)
	r.Get("/users/{user_id}/chats/search", s.SearchChats)

	r.Post("/chats/", s.CreateChat)
	r.Get("/chats/{chat_id}", s.GetChat)
	r.Post("/chats/{chat_id}/messages", s.AppendMessage)

	r.Post("/run-agent/", s.RunAgent)

	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type userResponse struct {
	UserID  string   `json:"user_id"`
	Name    string   `json:"name"`
	ChatIDs []string `json:"chat_ids"`
}

type chatResponse struct {
	ChatID   string           `json:"chat_id"`
	UserID   string           `json:"user_id"`
	Name     string           `json:"name"`
	Messages []domain.Message `json:"messages"`
}

// CreateUser handles POST /users/.
func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
		Name   string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	u, err := s.users.Create(r.Context(), req.UserID, req.Name)
	if err != nil {
		// Duplicate registration is a client mistake here, not a conflict.
		if errors.Is(err, domain.ErrAlreadyExists) {
			writeError(w, http.StatusBadRequest, codeAlreadyExists, "User already exists")
			return
		}
		if errors.Is(err, domain.ErrInvalidUser) {
			writeError(w, http.StatusBadRequest, codeValidationFailed, safeDomainMessage(err))
			return
		}
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, userToResponse(u))
}

// GetUser handles GET /users/{user_id}. Unknown users are created lazily.
func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.GetOrCreate(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userToResponse(u))
}

// ListUserChats handles GET /users/{user_id}/chats.
func (s *Server) ListUserChats(w http.ResponseWriter, r *http.Request) {
	chats, err := s.users.ListChats(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]chatResponse, len(chats))
	for i, c := range chats {
		items[i] = chatToResponse(c)
	}

	writeJSON(w, http.StatusOK, map[string]any{"chats": items})
}

// SearchChats handles GET /users/{user_id}/chats/search.
func (s *Server) SearchChats(w http.ResponseWriter, r *http.Request) {
	records, err := s.search.Search(r.Context(), chi.URLParam(r, "user_id"), r.URL.Query().Get("query"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	// records marshal with an always-present messages array.
	writeJSON(w, http.StatusOK, map[string]any{"results": records})
}

// CreateChat handles POST /chats/.
func (s *Server) CreateChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
		Name   string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "user_id is required")
		return
	}

	c, err := s.chats.Create(r.Context(), req.UserID, req.Name)
	if err != nil {
		// Chat creation requires an existing user; a missing one means the
		// caller skipped registration, reported as a server-side failure.
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Error("chat creation for unknown user", zap.Error(err))
			writeError(w, http.StatusInternalServerError, codeInternalError, "Failed to create chat")
			return
		}
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, chatToResponse(c))
}

// GetChat handles GET /chats/{chat_id}.
func (s *Server) GetChat(w http.ResponseWriter, r *http.Request) {
	c, err := s.chats.Get(r.Context(), chi.URLParam(r, "chat_id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chatToResponse(c))
}

// AppendMessage handles POST /chats/{chat_id}/messages.
func (s *Server) AppendMessage(w http.ResponseWriter, r *http.Request) {
	var req domain.Message
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "Message content is required")
		return
	}

	m, err := s.chats.AppendMessage(r.Context(), chi.URLParam(r, "chat_id"), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, m)
}

// RunAgent handles POST /run-agent/.
func (s *Server) RunAgent(w http.ResponseWriter, r *http.Request) {
	if s.agent == nil {
		writeError(w, http.StatusNotImplemented, codeAgentDisabled, "No agent provider configured")
		return
	}

	var req struct {
		Task string `json:"task"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	results, err := s.agent.Run(r.Context(), req.Task)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if results == nil {
		results = []domain.AgentStepResult{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"results": results,
	})
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func userToResponse(u domain.User) userResponse {
	chatIDs := u.ChatIDs()
	if chatIDs == nil {
		chatIDs = []string{}
	}
	return userResponse{
		UserID:  u.UserID(),
		Name:    u.Name(),
		ChatIDs: chatIDs,
	}
}

func chatToResponse(c domain.Chat) chatResponse {
	msgs := c.Messages()
	if msgs == nil {
		msgs = []domain.Message{}
	}
	return chatResponse{
		ChatID:   c.ChatID(),
		UserID:   c.UserID(),
		Name:     c.Name(),
		Messages: msgs,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"code":    code,
		"message": message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrUserNotFound,
		domain.ErrChatNotFound,
		domain.ErrAlreadyExists,
		domain.ErrEmptyQuery,
		domain.ErrEmptyTask,
		domain.ErrInvalidUser,
		domain.ErrAgentProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
