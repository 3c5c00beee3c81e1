package handler

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Endpoint is one entry of the GET / index.
type Endpoint struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// Index lists every route registered on routes, sorted by path then method.
// It walks the router on each request, so it always matches what is served.
func Index(routes chi.Routes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		endpoints := []Endpoint{}
		err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			// A subrouter's "/" route is reported as "/user/"; list it as "/user".
			route = strings.TrimSuffix(strings.ReplaceAll(route, "/*/", "/"), "/*")
			if len(route) > 1 {
				route = strings.TrimSuffix(route, "/")
			}
			endpoints = append(endpoints, Endpoint{Method: method, Path: route})
			return nil
		})
		if err != nil {
			writeError(w, err)
			return
		}

		sort.Slice(endpoints, func(i, j int) bool {
			if endpoints[i].Path != endpoints[j].Path {
				return endpoints[i].Path < endpoints[j].Path
			}
			return endpoints[i].Method < endpoints[j].Method
		})
		writeJSON(w, http.StatusOK, endpoints)
	}
}
