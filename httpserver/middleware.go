package httpserver

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// LogRequests logs one line per request with a short request ID so
// interleaved dual-mode output stays attributable.
func LogRequests(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.New().String()[:8]

		next.ServeHTTP(w, r)

		log.Printf("%s %s - %s %s %s - %v",
			reqID,
			r.RemoteAddr,
			r.Method,
			r.URL.Path,
			r.Proto,
			time.Since(start),
		)
	}
}

// EnableCrossOrigin allows all origins and answers preflight requests
// before they reach the router.
func EnableCrossOrigin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	}
}

// Chain combines middleware functions, outermost last.
func Chain(h http.HandlerFunc, middleware ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	for _, m := range middleware {
		h = m(h)
	}
	return h
}

// ApplyDefault applies the default middleware in the correct order.
func ApplyDefault(h http.HandlerFunc) http.HandlerFunc {
	return Chain(
		h,
		EnableCrossOrigin,
		LogRequests,
	)
}
