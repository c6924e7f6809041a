package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	stderrors "errors"

	"github.com/gorilla/websocket"

	"watchroom/auth"
	"watchroom/domain"
	"watchroom/errors"
	"watchroom/observability"
	"watchroom/services"
)

// Handler wires the room service to HTTP: room lifecycle and token
// issuance over JSON, the session itself over a websocket upgrade.
type Handler struct {
	log        *slog.Logger
	service    services.IRoomService
	tokens     *auth.TokenManager
	monitoring *observability.MonitoringManager
	upgrader   websocket.Upgrader
}

func NewHandler(log *slog.Logger, service services.IRoomService, tokens *auth.TokenManager, monitoring *observability.MonitoringManager) *Handler {
	return &Handler{
		log:        log,
		service:    service,
		tokens:     tokens,
		monitoring: monitoring,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Register mounts all routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /rooms", h.handleCreateRoom)
	mux.HandleFunc("DELETE /rooms/{room}", h.handleDisposeRoom)
	mux.HandleFunc("POST /tokens", h.handleIssueToken)
	mux.HandleFunc("GET /rooms/{room}/archive", h.handleArchive)
	mux.HandleFunc("GET /rooms/{room}/search", h.handleSearch)
	mux.HandleFunc("GET /api/monitoring", h.handleMonitoring)
	mux.HandleFunc("GET /ws", h.handleSession)
}

type createRoomRequest struct {
	Room     string `json:"room"`
	JoinCode string `json:"join_code,omitempty"`
}

func (h *Handler) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}
	if err := auth.ValidateRoom(auth.RoomRequest{Room: req.Room, JoinCode: req.JoinCode}); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.service.CreateRoom(domain.RoomID(req.Room), req.JoinCode); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) handleDisposeRoom(w http.ResponseWriter, r *http.Request) {
	h.service.DisposeRoom(domain.RoomID(r.PathValue("room")))
	w.WriteHeader(http.StatusNoContent)
}

type issueTokenRequest struct {
	Room          string `json:"room"`
	JoinCode      string `json:"join_code,omitempty"`
	ParticipantID string `json:"participant_id"`
	DisplayName   string `json:"display_name"`
}

type issueTokenResponse struct {
	Token string `json:"token"`
}

func (h *Handler) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	var req issueTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request")
		return
	}
	if err := auth.ValidateToken(auth.TokenRequest{
		Room:          req.Room,
		JoinCode:      req.JoinCode,
		ParticipantID: req.ParticipantID,
		DisplayName:   req.DisplayName,
	}); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	token, err := h.service.IssueToken(domain.RoomID(req.Room), req.JoinCode, req.ParticipantID, req.DisplayName)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, issueTokenResponse{Token: token})
}

type archiveResponse struct {
	Messages any     `json:"messages"`
	Cursor   *string `json:"cursor,omitempty"`
}

func (h *Handler) handleArchive(w http.ResponseWriter, r *http.Request) {
	room := domain.RoomID(r.PathValue("room"))
	var cursor *string
	if c := r.URL.Query().Get("cursor"); c != "" {
		cursor = &c
	}
	messages, next, err := h.service.ArchivedMessages(room, cursor)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, archiveResponse{Messages: messages, Cursor: next})
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	room := domain.RoomID(r.PathValue("room"))
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "offset must be a non-negative integer")
			return
		}
		offset = parsed
	}
	hits, total, err := h.service.Search(r.Context(), room, query, offset)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, SearchResultPayload{Total: total, Hits: hits})
}

func (h *Handler) handleMonitoring(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.monitoring.GetLatest())
}

// handleSession authenticates the token, upgrades the connection, joins
// the room with the connection's sink subscribed, then runs the pumps.
func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	claims, err := h.tokens.Validate(r.URL.Query().Get("token"))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := NewClient(conn, claims, h.service, h.log)
	sink := NewClientSink(client.Send(), h.log)

	if _, err := h.service.JoinAuthenticated(r.Context(), claims, sink); err != nil {
		frame, ferr := NewFrame(TypeError, ErrorPayload{Message: err.Error()})
		if ferr == nil {
			if data, merr := json.Marshal(frame); merr == nil {
				conn.WriteMessage(websocket.TextMessage, data)
			}
		}
		conn.Close()
		return
	}

	// The session outlives the upgrade request, so the pumps get their
	// own context rather than r.Context().
	go client.WritePump()
	go client.ReadPump(context.Background())
}

func statusFor(err error) int {
	switch {
	case stderrors.Is(err, errors.ErrRoomNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, errors.ErrRoomExists):
		return http.StatusConflict
	case stderrors.Is(err, errors.ErrInvalidJoinCode), stderrors.Is(err, errors.ErrInvalidToken):
		return http.StatusUnauthorized
	case stderrors.Is(err, errors.ErrAlreadyActive):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorPayload{Message: message})
}
