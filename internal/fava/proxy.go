package fava

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
)

// Proxy returns a handler that forwards requests to the running fava
// instance. While fava is not running it answers 503 instead.
func (m *Manager) Proxy() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		state, port := m.state, m.port
		m.mu.Unlock()

		if state != StateRunning {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": fmt.Sprintf("fava is %s", state),
			})
			return
		}

		target := &url.URL{Scheme: "http", Host: fmt.Sprintf("127.0.0.1:%d", port)}
		httputil.NewSingleHostReverseProxy(target).ServeHTTP(w, r)
	})
}
