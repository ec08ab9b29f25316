// Package flash stores one-shot user messages in a signed cookie session so
// they survive a post/redirect/get round trip.
package flash

import (
	"encoding/gob"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const sessionName = "promptvault_flash"

// Message kinds.
const (
	Success = "success"
	Error   = "error"
)

// Message is a single flash entry.
type Message struct {
	Kind string
	Text string
}

func init() {
	gob.Register(Message{})
}

// Store reads and writes flash messages.
type Store struct {
	sessions *sessions.CookieStore
	logger   *slog.Logger
}

// New creates a Store signing cookies with key. An empty key generates a
// random one, which invalidates pending messages on restart.
func New(key []byte, secure bool, logger *slog.Logger) *Store {
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
	}

	cs := sessions.NewCookieStore(key)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &Store{
		sessions: cs,
		logger:   logger.With("system", "flash"),
	}
}

// Add queues a message for the next rendered page.
// Failures are logged; a lost flash never fails the request.
func (s *Store) Add(w http.ResponseWriter, r *http.Request, kind, text string) {
	session, err := s.sessions.Get(r, sessionName)
	if err != nil {
		s.logger.Warn("flash session decode failed", "error", err)
	}

	session.AddFlash(Message{Kind: kind, Text: text})
	if err := session.Save(r, w); err != nil {
		s.logger.Error("flash session save failed", "error", err)
	}
}

// Pop returns and clears all queued messages.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) []Message {
	session, err := s.sessions.Get(r, sessionName)
	if err != nil {
		s.logger.Warn("flash session decode failed", "error", err)
	}

	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}

	if err := session.Save(r, w); err != nil {
		s.logger.Error("flash session save failed", "error", err)
	}

	messages := make([]Message, 0, len(raw))
	for _, v := range raw {
		switch m := v.(type) {
		case Message:
			messages = append(messages, m)
		default:
			messages = append(messages, Message{Kind: Error, Text: fmt.Sprint(m)})
		}
	}
	return messages
}
