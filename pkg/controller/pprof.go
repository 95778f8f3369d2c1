package controller

import (
	"net/http"
	"net/http/pprof"
)

// PprofPrefix is the path under which PprofMux serves its handlers.
const PprofPrefix = "/debug/pprof/"

// PprofMux returns an http.ServeMux with net/http/pprof handlers registered
// under PprofPrefix. Mount it without stripping the prefix: pprof.Index
// derives profile names from the full request path.
func PprofMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc(PprofPrefix, pprof.Index)
	mux.HandleFunc(PprofPrefix+"cmdline", pprof.Cmdline)
	mux.HandleFunc(PprofPrefix+"profile", pprof.Profile)
	mux.HandleFunc(PprofPrefix+"symbol", pprof.Symbol)
	mux.HandleFunc(PprofPrefix+"trace", pprof.Trace)

	return mux
}
