package handler

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
)

// pathVars returns the route variables with percent-escapes decoded. The
// router matches on the escaped path so a player name may contain "/".
func pathVars(r *http.Request) map[string]string {
	vars := mux.Vars(r)
	decoded := make(map[string]string, len(vars))
	for k, v := range vars {
		if unescaped, err := url.PathUnescape(v); err == nil {
			v = unescaped
		}
		decoded[k] = v
	}
	return decoded
}
