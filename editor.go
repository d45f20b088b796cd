package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

const maxPostTextLength = 500

const (
	indexPath    = "/"
	previewPath  = "/preview"
	schedulePath = "/schedule"
	editPath     = "/edit"
	deletePath   = "/delete"
)

type postFormRenderData struct {
	ID           int
	Text         string
	Image        string
	ScheduleTime string
	Min          string
	Error        string
}

func (a *postClock) serveSchedulePage(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, templateSchedule, &renderData{
		Title: "Schedule a post",
		Data: &postFormRenderData{
			Min: localTimeString(time.Now()),
		},
	})
}

func (a *postClock) handleSchedule(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(0); err != nil {
		a.serveError(w, r, err.Error(), http.StatusBadRequest)
		return
	}
	form := &postFormRenderData{
		Text:         strings.TrimSpace(r.FormValue("text")),
		ScheduleTime: r.FormValue("schedule_time"),
		Min:          localTimeString(time.Now()),
	}
	redisplay := func(message string) {
		form.Error = message
		a.render(w, r, templateSchedule, &renderData{
			Title: "Schedule a post",
			Data:  form,
		})
	}
	scheduleTime, message := validatePostForm(form)
	if message != "" {
		redisplay(message)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil || header.Filename == "" {
		redisplay("Please choose an image.")
		return
	}
	defer func() { _ = file.Close() }()
	filename, err := a.saveMediaFile(header.Filename, file)
	if errors.Is(err, errNoMediaFile) {
		redisplay("Please choose an image.")
		return
	} else if err != nil {
		a.serveError(w, r, err.Error(), http.StatusInternalServerError)
		return
	}
	p := &post{
		Text:         form.Text,
		Image:        filename,
		ScheduleTime: scheduleTime,
	}
	if err = a.db.savePost(p); err != nil {
		a.serveError(w, r, err.Error(), http.StatusInternalServerError)
		return
	}
	a.scheduler.schedule(p.ID, p.ScheduleTime)
	a.flashMessage(w, r, "success", "Post scheduled!")
	http.Redirect(w, r, indexPath, http.StatusFound)
}

func (a *postClock) serveEditPage(w http.ResponseWriter, r *http.Request) {
	p, done := a.editablePost(w, r)
	if done {
		return
	}
	a.render(w, r, templateEdit, &renderData{
		Title: "Edit post",
		Data: &postFormRenderData{
			ID:           p.ID,
			Text:         p.Text,
			Image:        p.Image,
			ScheduleTime: localTimeString(p.ScheduleTime),
			Min:          localTimeString(time.Now()),
		},
	})
}

func (a *postClock) handleEdit(w http.ResponseWriter, r *http.Request) {
	p, done := a.editablePost(w, r)
	if done {
		return
	}
	if err := r.ParseMultipartForm(0); err != nil {
		a.serveError(w, r, err.Error(), http.StatusBadRequest)
		return
	}
	form := &postFormRenderData{
		ID:           p.ID,
		Image:        p.Image,
		Text:         strings.TrimSpace(r.FormValue("text")),
		ScheduleTime: r.FormValue("schedule_time"),
		Min:          localTimeString(time.Now()),
	}
	redisplay := func(message string) {
		form.Error = message
		a.render(w, r, templateEdit, &renderData{
			Title: "Edit post",
			Data:  form,
		})
	}
	scheduleTime, message := validatePostForm(form)
	if message != "" {
		redisplay(message)
		return
	}
	// Image replacement is optional on edit
	if file, header, err := r.FormFile("image"); err == nil && header.Filename != "" {
		filename, err := a.saveMediaFile(header.Filename, file)
		_ = file.Close()
		if err != nil && !errors.Is(err, errNoMediaFile) {
			a.serveError(w, r, err.Error(), http.StatusInternalServerError)
			return
		}
		if err == nil {
			p.Image = filename
		}
	}
	p.Text = form.Text
	p.ScheduleTime = scheduleTime
	if err := a.db.updatePost(p); err != nil {
		a.serveError(w, r, err.Error(), http.StatusInternalServerError)
		return
	}
	// Replaces the pending timer, the old time can not fire anymore
	a.scheduler.schedule(p.ID, p.ScheduleTime)
	a.flashMessage(w, r, "success", "Post updated.")
	http.Redirect(w, r, indexPath, http.StatusFound)
}

func (a *postClock) handleDelete(w http.ResponseWriter, r *http.Request) {
	p, done := a.requestPost(w, r)
	if done {
		return
	}
	if !p.Published {
		// Canceling tolerates a timer that already fired or never existed
		a.scheduler.cancel(p.ID)
	}
	if err := a.db.deletePost(p.ID); err != nil {
		a.serveError(w, r, err.Error(), http.StatusInternalServerError)
		return
	}
	a.flashMessage(w, r, "success", "Post deleted.")
	http.Redirect(w, r, lo.Ternary(p.Published, previewPath, indexPath), http.StatusFound)
}

// requestPost loads the post the request path points at, it already served
// a response when done is true
func (a *postClock) requestPost(w http.ResponseWriter, r *http.Request) (p *post, done bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		a.serve404(w, r)
		return nil, true
	}
	p, err = a.db.getPost(id)
	if errors.Is(err, errPostNotFound) {
		a.serve404(w, r)
		return nil, true
	} else if err != nil {
		a.serveError(w, r, err.Error(), http.StatusInternalServerError)
		return nil, true
	}
	return p, false
}

// editablePost is requestPost plus the guard that published posts are
// immutable for the user
func (a *postClock) editablePost(w http.ResponseWriter, r *http.Request) (p *post, done bool) {
	p, done = a.requestPost(w, r)
	if done {
		return nil, true
	}
	if p.Published {
		a.flashMessage(w, r, "warning", "Published posts cannot be edited.")
		http.Redirect(w, r, previewPath, http.StatusFound)
		return nil, true
	}
	return p, false
}

// validatePostForm checks text and schedule time, it returns the parsed
// time or the message to redisplay the form with
func validatePostForm(form *postFormRenderData) (time.Time, string) {
	if form.Text == "" {
		return time.Time{}, "Please enter some text."
	}
	if len(form.Text) > maxPostTextLength {
		return time.Time{}, "Text is too long."
	}
	scheduleTime, err := time.ParseInLocation(datetimeLocalFormat, form.ScheduleTime, time.Local)
	if err != nil {
		return time.Time{}, "Invalid date/time format."
	}
	if !scheduleTime.After(time.Now()) {
		return time.Time{}, "You cannot schedule a post in the past."
	}
	return scheduleTime, ""
}
