package utils

import (
	"net"
	"net/url"
	"strings"
)

// OriginPolicy decides which Origin header values may call the API cross
// origin. The zero value trusts local-network callers only: localhost,
// loopback/private/link-local IPs, .local mDNS names, and bare single-label
// LAN hostnames. Extra exact origins (a hosted frontend, say) can be added
// with Allow.
type OriginPolicy struct {
	extra map[string]struct{}
}

// NewOriginPolicy builds a policy trusting the local network plus the given
// exact origins. Entries are compared verbatim against the Origin header,
// scheme and port included.
func NewOriginPolicy(origins ...string) *OriginPolicy {
	p := &OriginPolicy{}
	for _, o := range origins {
		p.Allow(o)
	}
	return p
}

// Allow adds an exact origin to the trusted set. Empty strings are ignored.
func (p *OriginPolicy) Allow(origin string) {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return
	}
	if p.extra == nil {
		p.extra = make(map[string]struct{})
	}
	p.extra[origin] = struct{}{}
}

// Allows reports whether the given Origin header value is trusted.
func (p *OriginPolicy) Allows(origin string) bool {
	if origin == "" {
		return false
	}
	if _, ok := p.extra[origin]; ok {
		return true
	}

	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}
	host := parsed.Hostname()

	if host == "localhost" || strings.HasSuffix(host, ".local") {
		return true
	}
	// Single-label names only resolve on the LAN.
	if !strings.Contains(host, ".") {
		return true
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast()
	}
	return false
}
