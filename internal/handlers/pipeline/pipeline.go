package pipeline

import (
	"net/http"

	"github.com/osokin/authgate/internal/apperrors"
	"github.com/osokin/authgate/internal/handlers/render"
	"github.com/osokin/authgate/internal/logger"
)

// Handler is an interceptor step: it either terminates the request
// (writing a response and returning nil), raises a classified failure,
// or passes through to the next step.
type Handler func(w http.ResponseWriter, r *http.Request) error

// Middleware wraps a Handler the way http.Handler middlewares wrap
// each other, but carrying the error return.
type Middleware func(next Handler) Handler

// Chain applies middlewares in the given order: m1(m2(...(h)))
func Chain(h Handler, mds ...Middleware) Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

// Terminal adapts the downstream router to the end of the chain
func Terminal(h http.Handler) Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		h.ServeHTTP(w, r)
		return nil
	}
}

// commitWriter tracks whether anything was written to the response, so
// the normalizer never stomps on a body a downstream step has started.
type commitWriter struct {
	http.ResponseWriter
	committed bool
}

func (w *commitWriter) WriteHeader(statusCode int) {
	w.committed = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *commitWriter) Write(p []byte) (int, error) {
	w.committed = true
	return w.ResponseWriter.Write(p)
}

// Normalize is the outermost pipeline boundary: the single place where
// failures raised anywhere in the chain become an HTTP response.
// Classified kinds map to their fixed status+message; everything else,
// panics included, collapses to the generic 500 so no internal detail
// ever leaks to a client.
func Normalize(l logger.Logger, h Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cw := &commitWriter{ResponseWriter: w}

		defer func() {
			if rec := recover(); rec != nil {
				l.Error("panic while handling request", "uri", r.RequestURI, "panic", rec)
				if !cw.committed {
					render.Error(cw, apperrors.ErrInternal)
				}
			}
		}()

		err := h(cw, r)
		if err == nil {
			return
		}

		appErr := apperrors.Classify(err)
		if appErr == apperrors.ErrInternal {
			l.Error("unclassified failure in auth pipeline", "uri", r.RequestURI, "error", err.Error())
		} else {
			l.Info("auth pipeline failure", "uri", r.RequestURI, "status", appErr.Status, "error", err.Error())
		}

		if !cw.committed {
			render.Error(cw, appErr)
		}
	})
}
