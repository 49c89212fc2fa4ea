// Package module wires the dashboard into the API using modkit
package module

import (
	"net/http"
	"strings"

	"statsdash/internal/core/transform"
	modkit "statsdash/internal/modkit"
	"statsdash/internal/modkit/httpkit"
	str "statsdash/internal/platform/strings"
	dashhttp "statsdash/internal/services/api/dashboard/http"
	dashrepo "statsdash/internal/services/api/dashboard/repo"
	dashsvc "statsdash/internal/services/api/dashboard/service"
)

// Module implements the dashboard module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc dashsvc.Service
}

// New constructs the dashboard module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("dashboard"),
		modkit.WithPrefix("/dashboard"),
	}, opts...)...)

	repo := dashrepo.NewPG()
	var usage dashrepo.Source
	if deps.CH != nil {
		usage = dashrepo.NewUsage(deps.CH)
	}
	svc := dashsvc.New(deps.PG, repo, usage, configFor(deps))

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptDashboardPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		dashhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// configFor resolves the transform mappings from module-scoped env vars
// DASHBOARD_FAMILIES holds src:dst pairs, DASHBOARD_SUBCOUNTS output keys
func configFor(deps modkit.Deps) transform.Config {
	cfg := deps.Cfg.Prefix("DASHBOARD_")

	families := map[string]string{}
	for _, pair := range cfg.MayCSV("FAMILIES", nil) {
		src, dst, ok := strings.Cut(pair, ":")
		if !ok || src == "" || dst == "" {
			continue
		}
		families[src] = dst
	}

	ui := map[string]bool{}
	for _, key := range cfg.MayCSV("SUBCOUNTS", nil) {
		ui[key] = true
	}

	return transform.Config{Families: families, UISubcounts: ui}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
