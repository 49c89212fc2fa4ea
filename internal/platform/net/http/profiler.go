// Package http hosts server adapters. Profiler mounts pprof endpoints when enabled
package http

import (
	stdhttp "net/http"

	mw "github.com/go-chi/chi/v5/middleware"
)

// MountProfiler exposes pprof under prefix (e.g. "/debug") when enabled.
// Disabled is the default for the api binary; the toggle comes from config
func MountProfiler(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	// the Router seam has no Mount, so strip the prefix before the profiler mux
	h := stdhttp.StripPrefix(prefix, mw.Profiler())
	for _, p := range []string{prefix, prefix + "/*"} {
		r.Get(p, func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			h.ServeHTTP(w, req)
		})
	}
}
