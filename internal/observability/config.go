package observability

import (
	"net/http/pprof"

	"github.com/gorilla/mux"
)

// Config captures opt-in observability toggles that wire into the server.
type Config struct {
	EnablePprof bool `yaml:"enablePprof"`
}

// Mount registers the pprof handlers under /debug/pprof when enabled.
func (c Config) Mount(router *mux.Router) {
	if !c.EnablePprof || router == nil {
		return
	}
	debug := router.PathPrefix("/debug/pprof").Subrouter()
	debug.HandleFunc("/cmdline", pprof.Cmdline)
	debug.HandleFunc("/profile", pprof.Profile)
	debug.HandleFunc("/symbol", pprof.Symbol)
	debug.HandleFunc("/trace", pprof.Trace)
	debug.PathPrefix("/").HandlerFunc(pprof.Index)
}
