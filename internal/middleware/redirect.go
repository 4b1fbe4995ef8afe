package middleware

import (
	"net"
	"net/http"
	"strings"
)

// RedirectHTTPS returns a handler that sends every request to the same path
// on the HTTPS listener at httpsAddr, keeping the method (307).
func RedirectHTTPS(httpsAddr string) http.Handler {
	_, port, _ := net.SplitHostPort(httpsAddr)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host := r.Host
		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		} else {
			host = strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
		}
		if port != "" && port != "443" {
			host = net.JoinHostPort(host, port)
		}

		target := "https://" + host + r.URL.RequestURI()
		http.Redirect(w, r, target, http.StatusTemporaryRedirect)
	})
}
