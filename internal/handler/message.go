package handler

import (
	"log/slog"
	"net/http"

	"folio/internal/httputil"
	"folio/internal/service"
)

// Message actions multiplexed over POST /api/messages. Submit is the public
// contact form; the rest belong to the admin.
const (
	actionSubmit     = "submit"
	actionDelete     = "delete"
	actionToggleRead = "toggleRead"
)

// MessageHandler handles contact message HTTP requests
type MessageHandler struct {
	messages *service.MessageService
	logger   *slog.Logger
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messages *service.MessageService, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{
		messages: messages,
		logger:   logger,
	}
}

// ListMessages returns all messages, newest first
// GET /api/messages (admin)
func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.messages.List(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

// messageActionRequest is the action-multiplexed body of POST /api/messages.
type messageActionRequest struct {
	Action    string `json:"action"`
	MessageID string `json:"messageId"`
	service.SubmitRequest
}

// HandleAction dispatches a message action
// POST /api/messages — submit is public; delete and toggleRead require an
// admin session, which is checked here because the route cannot be gated
// wholesale.
func (h *MessageHandler) HandleAction(w http.ResponseWriter, r *http.Request) {
	var req messageActionRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch req.Action {
	case actionSubmit:
		id, err := h.messages.Submit(r.Context(), &req.SubmitRequest)
		if err != nil {
			handleError(w, err)
			return
		}
		httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"id":      id,
		})

	case actionDelete:
		if httputil.GetClaims(r) == nil {
			httputil.RespondError(w, http.StatusUnauthorized, "admin session required")
			return
		}
		if err := h.messages.Delete(r.Context(), req.MessageID); err != nil {
			handleError(w, err)
			return
		}
		httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})

	case actionToggleRead:
		if httputil.GetClaims(r) == nil {
			httputil.RespondError(w, http.StatusUnauthorized, "admin session required")
			return
		}
		read, err := h.messages.ToggleRead(r.Context(), req.MessageID)
		if err != nil {
			handleError(w, err)
			return
		}
		httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"read":    read,
		})

	default:
		httputil.RespondError(w, http.StatusBadRequest, "invalid action")
	}
}
