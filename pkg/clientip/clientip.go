package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Resolver extracts the client IP from a request.
// With TrustProxy unset only r.RemoteAddr is used, which is right when traffic
// reaches the app directly. Behind a reverse proxy set TrustProxy so the first
// X-Forwarded-For hop (or X-Real-IP) is used instead.
type Resolver struct {
	TrustProxy bool
}

// ClientIP returns the best guess at the caller's IP address.
func (res Resolver) ClientIP(r *http.Request) string {
	if res.TrustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first := fwd
			if idx := strings.Index(fwd, ","); idx != -1 {
				first = fwd[:idx]
			}
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
		if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
			return ip
		}
	}
	return RemoteIP(r)
}

// RemoteIP returns the host part of r.RemoteAddr.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return strings.TrimSpace(host)
}
