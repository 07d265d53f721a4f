package tenant

import (
	"net"
	"strings"
)

// SubdomainFromHost returns the tenant label of host, or "" when the host has
// two or fewer labels or its first label is reserved.
func SubdomainFromHost(host string, reserved map[string]struct{}) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.TrimSuffix(host, ".")
	if host == "" || net.ParseIP(host) != nil {
		return ""
	}

	labels := strings.Split(host, ".")
	if len(labels) <= 2 {
		return ""
	}
	candidate := labels[0]
	if candidate == "" {
		return ""
	}
	if _, skip := reserved[candidate]; skip {
		return ""
	}
	return candidate
}

// ReservedSet builds the lookup set used by SubdomainFromHost.
func ReservedSet(labels []string) map[string]struct{} {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		l = strings.ToLower(strings.TrimSpace(l))
		if l != "" {
			set[l] = struct{}{}
		}
	}
	return set
}
