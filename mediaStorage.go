package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

const mediaWebPath = "/static/images"

var errNoMediaFile = errors.New("no file or filename provided")

type mediaStorage interface {
	save(filename string, file io.Reader) (location string, err error)
}

func (a *postClock) initMediaStorage() {
	a.mediaStorageInit.Do(func() {
		a.mediaStorage = &localMediaStorage{path: a.cfg.Media.Path}
	})
}

// saveMediaFile sanitizes the original filename and stores the file. It
// returns the stored name the post references. Same-named uploads
// overwrite each other, last write wins.
func (a *postClock) saveMediaFile(filename string, f io.Reader) (string, error) {
	a.initMediaStorage()
	name := sanitizeFilename(filename)
	if name == "" || f == nil {
		return "", errNoMediaFile
	}
	return a.mediaStorage.save(name, f)
}

type localMediaStorage struct {
	path string // required
}

func (l *localMediaStorage) save(filename string, file io.Reader) (string, error) {
	if err := os.MkdirAll(l.path, 0777); err != nil {
		return "", err
	}
	newFile, err := os.Create(filepath.Join(l.path, filename))
	if err != nil {
		return "", err
	}
	if _, err = io.Copy(newFile, file); err != nil {
		_ = newFile.Close()
		return "", err
	}
	if err = newFile.Close(); err != nil {
		return "", err
	}
	return filename, nil
}
