package middleware

import (
	"net/http"
	"strings"
)

// заголовки, которые фронтенд читает из ответа /lookup
var exposed = strings.Join([]string{
	"Content-Disposition",
	"X-Request-ID",
	"X-Lookup-Found",
	"X-Lookup-Not-Found",
}, ", ")

type corsPolicy struct {
	any     bool
	origins map[string]struct{}
}

func newCORSPolicy(allow []string) corsPolicy {
	p := corsPolicy{origins: make(map[string]struct{}, len(allow))}
	for _, o := range allow {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		switch o {
		case "":
		case "*":
			p.any = true
		default:
			p.origins[o] = struct{}{}
		}
	}
	return p
}

// origin — значение Access-Control-Allow-Origin для запроса; "" — не разрешён.
func (p corsPolicy) origin(r *http.Request) string {
	if p.any {
		return "*"
	}
	o := r.Header.Get("Origin")
	if _, ok := p.origins[o]; ok {
		return o
	}
	return ""
}

func CORS(allowOrigins []string) func(http.Handler) http.Handler {
	p := newCORSPolicy(allowOrigins)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if o := p.origin(r); o != "" {
				h.Set("Access-Control-Allow-Origin", o)
				h.Set("Access-Control-Expose-Headers", exposed)
			}
			if !p.any {
				h.Add("Vary", "Origin")
			}
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
				h.Set("Access-Control-Max-Age", "600")
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
