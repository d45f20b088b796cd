package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/justinas/alice"
	"go.postclock.app/app/pkgs/bodylimit"
)

func (a *postClock) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Get(indexPath, a.serveIndex)
	r.Get(previewPath, a.servePreview)

	r.Get(schedulePath, a.serveSchedulePage)
	r.With(bodylimit.BodyLimit(a.cfg.Media.maxUploadSize)).Post(schedulePath, a.handleSchedule)

	r.Get(editPath+"/{id}", a.serveEditPage)
	r.With(bodylimit.BodyLimit(a.cfg.Media.maxUploadSize)).Post(editPath+"/{id}", a.handleEdit)

	r.Post(deletePath+"/{id}", a.handleDelete)

	// Uploaded images
	r.Handle(mediaWebPath+"/*", http.StripPrefix(mediaWebPath, http.FileServer(http.Dir(a.cfg.Media.Path))))

	r.NotFound(a.serve404)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		a.serveError(w, r, "Method not allowed", http.StatusMethodNotAllowed)
	})

	chain := alice.New(middleware.Recoverer)
	if a.cfg.Server.Logging {
		chain = chain.Append(a.logMiddleware)
	}
	return chain.Then(r)
}
