package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"
)

const (
	contentType = "Content-Type"

	charsetUtf8Suffix = "; charset=utf-8"

	contentTypeHTML     = "text/html"
	contentTypeHTMLUTF8 = contentTypeHTML + charsetUtf8Suffix
)

func (a *postClock) startServer() error {
	if err := a.initHTTPLog(); err != nil {
		return err
	}
	server := &http.Server{
		Addr:              ":" + strconv.Itoa(a.cfg.Server.Port),
		Handler:           a.buildRouter(),
		ReadHeaderTimeout: 1 * time.Minute,
	}
	listener, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return err
	}
	a.shutdown.Add(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			a.error("Failed to shutdown server", "err", err)
			return
		}
		a.info("Stopped server")
	})
	a.info("Server listening", "addr", listener.Addr().String())
	if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
