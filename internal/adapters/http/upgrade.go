package http

import (
	"bufio"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
)

// WrapUpgrade adapts a handler that hijacks the connection, such as a
// WebSocket upgrade, to gin.
//
// Upgraders flush the 101 response through gin's WriteHeaderNow before
// hijacking, and gin refuses to hijack a response it has already written.
// Hijack therefore goes straight to the server's writer while headers
// still flow through gin, so the engine does not write a second status
// once the handler returns.
func WrapUpgrade(h http.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		h(upgradeWriter{ResponseWriter: c.Writer}, c.Request)
	}
}

type upgradeWriter struct {
	gin.ResponseWriter
}

// Unwrap lets http.ResponseController reach the server's writer.
func (w upgradeWriter) Unwrap() http.ResponseWriter {
	if u, ok := w.ResponseWriter.(interface{ Unwrap() http.ResponseWriter }); ok {
		return u.Unwrap()
	}

	return w.ResponseWriter
}

func (w upgradeWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hj, ok := w.Unwrap().(http.Hijacker); ok {
		return hj.Hijack()
	}

	return w.ResponseWriter.Hijack()
}
