package main

import (
	"embed"
	"html/template"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/tdewolff/minify/v2"
	mHtml "github.com/tdewolff/minify/v2/html"
	"go.postclock.app/app/pkgs/bufferpool"
)

const (
	templatesDir = "templates"
	templatesExt = ".gohtml"

	templateBase     = "base"
	templateIndex    = "index"
	templatePreview  = "preview"
	templateSchedule = "schedule"
	templateEdit     = "edit"
	templateError    = "error"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

type renderData struct {
	Title   string
	Flashes []flash
	Data    any
}

func (a *postClock) initTemplates() (err error) {
	a.templatesInit.Do(func() {
		templateFunctions := template.FuncMap{
			"dateformat": func(t time.Time, format string) string {
				if t.IsZero() {
					return ""
				}
				return t.Local().Format(format)
			},
			"datetimelocal": localTimeString,
			"mediapath": func(filename string) string {
				return mediaWebPath + "/" + filename
			},
		}
		a.templates = map[string]*template.Template{}
		baseTemplatePath := path.Join(templatesDir, templateBase+templatesExt)
		var entries []string
		entries, err = templateFiles()
		if err != nil {
			return
		}
		for _, p := range entries {
			name := strings.TrimSuffix(path.Base(p), templatesExt)
			if name == templateBase {
				continue
			}
			a.templates[name], err = template.New(name).Funcs(templateFunctions).ParseFS(templatesFS, baseTemplatePath, p)
			if err != nil {
				return
			}
		}
	})
	return err
}

func templateFiles() ([]string, error) {
	entries, err := templatesFS.ReadDir(templatesDir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && path.Ext(e.Name()) == templatesExt {
			files = append(files, path.Join(templatesDir, e.Name()))
		}
	}
	return files, nil
}

func (a *postClock) initMinify() {
	a.minInit.Do(func() {
		a.min = minify.New()
		a.min.AddFunc(contentTypeHTML, mHtml.Minify)
	})
}

func (a *postClock) render(w http.ResponseWriter, r *http.Request, template string, data *renderData) {
	a.renderWithStatusCode(w, r, http.StatusOK, template, data)
}

func (a *postClock) renderWithStatusCode(w http.ResponseWriter, r *http.Request, statusCode int, templateName string, data *renderData) {
	if err := a.initTemplates(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if data == nil {
		data = &renderData{}
	}
	// Popping flashes sets the session cookie, this has to happen before
	// the response status is written
	if r != nil {
		data.Flashes = a.popFlashes(w, r)
	}
	t, ok := a.templates[templateName]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	// Render to a buffer first to enable minification
	buf := bufferpool.Get()
	defer bufferpool.Put(buf)
	if err := t.ExecuteTemplate(buf, templateName, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set(contentType, contentTypeHTMLUTF8)
	w.WriteHeader(statusCode)
	a.initMinify()
	if err := a.min.Minify(contentTypeHTML, w, buf); err != nil {
		a.error("Failed to render", "template", templateName, "err", err)
	}
}
