package main

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const flashSession = "pc-flash"

func (a *postClock) initSessions() {
	store := sessions.NewCookieStore([]byte(a.cfg.Session.Secret))
	store.Options = &sessions.Options{
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/", // Cookie for all pages
	}
	a.flashSessions = store
}

type flash struct {
	Category string
	Message  string
}

// flashMessage queues a message that the next rendered page shows once
func (a *postClock) flashMessage(w http.ResponseWriter, r *http.Request, category, message string) {
	if a.flashSessions == nil {
		return
	}
	session, err := a.flashSessions.Get(r, flashSession)
	if err != nil {
		// A stale or tampered cookie, start with a fresh session
		session, _ = a.flashSessions.New(r, flashSession)
	}
	if session == nil {
		return
	}
	session.AddFlash(message, flashKey(category))
	if err := session.Save(r, w); err != nil {
		a.error("Failed to save flash session", "err", err)
	}
}

func (a *postClock) popFlashes(w http.ResponseWriter, r *http.Request) (flashes []flash) {
	if a.flashSessions == nil {
		return nil
	}
	session, err := a.flashSessions.Get(r, flashSession)
	if err != nil || session == nil {
		return nil
	}
	for _, category := range []string{"success", "warning", "danger"} {
		for _, f := range session.Flashes(flashKey(category)) {
			if message, ok := f.(string); ok {
				flashes = append(flashes, flash{Category: category, Message: message})
			}
		}
	}
	if len(flashes) > 0 {
		if err := session.Save(r, w); err != nil {
			a.error("Failed to save flash session", "err", err)
		}
	}
	return flashes
}

func flashKey(category string) string {
	return "_flash_" + category
}
