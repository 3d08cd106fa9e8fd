package structures

import "net/http"

type Route struct {
	Method  string
	Url     string
	Handler http.Handler
}

func (r Route) Pattern() string {
	if r.Method == "" {
		return r.Url
	}
	return r.Method + " " + r.Url
}
