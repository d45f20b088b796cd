package main

import (
	"fmt"
	"net/http"
)

type errorData struct {
	Title   string
	Message string
}

func (a *postClock) serve404(w http.ResponseWriter, r *http.Request) {
	a.serveError(w, r, fmt.Sprintf("%s was not found", r.RequestURI), http.StatusNotFound)
}

func (a *postClock) serveError(w http.ResponseWriter, r *http.Request, message string, status int) {
	title := fmt.Sprintf("%d %s", status, http.StatusText(status))
	a.renderWithStatusCode(w, r, status, templateError, &renderData{
		Title: title,
		Data: &errorData{
			Title:   title,
			Message: message,
		},
	})
}
