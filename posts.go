package main

import (
	"errors"
	"net/http"
	"time"
)

var errPostNotFound = errors.New("post not found")

type post struct {
	ID           int
	Text         string
	Image        string
	ScheduleTime time.Time
	Published    bool
	PublishedAt  time.Time
}

type postListRenderData struct {
	Title string
	Posts []*post
}

// Scheduled posts, soonest first
func (a *postClock) serveIndex(w http.ResponseWriter, r *http.Request) {
	posts, err := a.db.getPosts(&postsRequestConfig{
		published: false,
		ascending: true,
	})
	if err != nil {
		a.serveError(w, r, err.Error(), http.StatusInternalServerError)
		return
	}
	a.render(w, r, templateIndex, &renderData{
		Title: "Scheduled posts",
		Data: &postListRenderData{
			Title: "Scheduled posts",
			Posts: posts,
		},
	})
}

// Published posts, most recent first
func (a *postClock) servePreview(w http.ResponseWriter, r *http.Request) {
	posts, err := a.db.getPosts(&postsRequestConfig{
		published: true,
		ascending: false,
	})
	if err != nil {
		a.serveError(w, r, err.Error(), http.StatusInternalServerError)
		return
	}
	a.render(w, r, templatePreview, &renderData{
		Title: "Published posts",
		Data: &postListRenderData{
			Title: "Published posts",
			Posts: posts,
		},
	})
}
