package router

import "github.com/gin-gonic/gin"

// apiBase is the path prefix every feature module mounts under.
const apiBase = "/api"

// Registry collects feature modules and mounts their routes on the shared
// API group. Modules attach their own middleware, so the order modules are
// added in is only the mount order.
type Registry struct {
	Engine  *gin.Engine
	API     *gin.RouterGroup
	modules []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group(apiBase)}
}

// Add queues modules for mounting. Call before RegisterAll.
func (r *Registry) Add(mods ...Module) {
	r.modules = append(r.modules, mods...)
}

// RegisterAll mounts every queued module.
func (r *Registry) RegisterAll() {
	for _, m := range r.modules {
		m.Register(r.API)
	}
}
