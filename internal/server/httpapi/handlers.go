package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/okunev/chatlite/internal/server/models"
)

func (s *HTTPServer) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *HTTPServer) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeviceID string `json:"device_id"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := s.sessions.Open(req.DeviceID, req.Username)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// --- saved accounts ---

func (s *HTTPServer) handleUpsertAccount(w http.ResponseWriter, r *http.Request) {
	var req accountPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	saved, err := s.accounts.Upsert(r.Context(), &models.SavedAccount{
		DeviceID:    req.DeviceID,
		Username:    req.Username,
		Color:       req.Color,
		Status:      req.Status,
		Avatar:      req.Avatar,
		Preferences: req.Preferences,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, accountToPayload(saved))
}

func (s *HTTPServer) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("device_id")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	accounts, err := s.accounts.List(r.Context(), deviceID, limit)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	payload := make([]accountPayload, 0, len(accounts))
	for _, a := range accounts {
		payload = append(payload, accountToPayload(a))
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *HTTPServer) handleCountAccounts(w http.ResponseWriter, r *http.Request) {
	count, err := s.accounts.Count(r.Context(), r.URL.Query().Get("device_id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, count)
}

// --- messages ---

func (s *HTTPServer) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	var req struct {
		Channel string `json:"channel"`
		Color   string `json:"color"`
		Body    string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Channel == "" {
		req.Channel = s.defaultChannel
	}

	message, err := s.messages.Send(r.Context(), req.Channel, identity.DeviceID, identity.Username, req.Color, req.Body)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageToPayload(message))
}

func (s *HTTPServer) handleListMessages(w http.ResponseWriter, r *http.Request) {
	channel := r.URL.Query().Get("channel")
	if channel == "" {
		channel = s.defaultChannel
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	var before time.Time
	if v := r.URL.Query().Get("before"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid before timestamp")
			return
		}
		before = parsed
	}

	messages, err := s.messages.List(r.Context(), channel, limit, before)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	payload := make([]messagePayload, 0, len(messages))
	for _, m := range messages {
		payload = append(payload, messageToPayload(m))
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *HTTPServer) handleEditMessage(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	var req struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := s.messages.Edit(r.Context(), r.PathValue("id"), identity.DeviceID, identity.Username, req.Body)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageToPayload(message))
}

func (s *HTTPServer) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	if err := s.messages.Delete(r.Context(), r.PathValue("id"), identity.DeviceID, identity.Username); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleToggleReaction(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	added, err := s.messages.React(r.Context(), r.PathValue("id"), identity.Username, r.PathValue("emoji"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"added": added})
}

// --- presence & typing ---

func (s *HTTPServer) handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	var req struct {
		Channel string `json:"channel"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Channel == "" {
		req.Channel = s.defaultChannel
	}

	if err := s.presence.Heartbeat(r.Context(), req.Channel, identity.DeviceID, identity.Username); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleListPresence(w http.ResponseWriter, r *http.Request) {
	channel := r.URL.Query().Get("channel")
	if channel == "" {
		channel = s.defaultChannel
	}

	online, err := s.presence.Online(r.Context(), channel)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	payload := make([]presencePayload, 0, len(online))
	for _, p := range online {
		payload = append(payload, presencePayload{Username: p.Username, LastSeen: p.LastSeen})
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *HTTPServer) handleTyping(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	var req struct {
		Channel string `json:"channel"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Channel == "" {
		req.Channel = s.defaultChannel
	}

	if err := s.presence.Typing(r.Context(), req.Channel, identity.DeviceID, identity.Username); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleListTyping(w http.ResponseWriter, r *http.Request) {
	channel := r.URL.Query().Get("channel")
	if channel == "" {
		channel = s.defaultChannel
	}

	typers, err := s.presence.Typers(r.Context(), channel)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	payload := make([]typerPayload, 0, len(typers))
	for _, t := range typers {
		payload = append(payload, typerPayload{Username: t.Username})
	}
	writeJSON(w, http.StatusOK, payload)
}

// --- avatars ---

func (s *HTTPServer) handleAvatarUploadURL(w http.ResponseWriter, r *http.Request) {
	key, url, err := s.avatars.GetPresignedPutURL(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"key": key, "put_url": url})
}

func (s *HTTPServer) handleAvatarDownloadURL(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "missing key")
		return
	}

	url, err := s.avatars.GetPresignedGetURL(r.Context(), key)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"get_url": url})
}
