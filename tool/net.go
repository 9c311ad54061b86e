package tool

import "net"

// IsLoopbackIP reports whether ip (no port) is a loopback address.
func IsLoopbackIP(ip string) bool {
	parsed := net.ParseIP(ip)
	return parsed != nil && parsed.IsLoopback()
}

// IsLoopbackHost accepts "localhost" and loopback literals. Used to refuse non-local bind addresses.
func IsLoopbackHost(host string) bool {
	if host == "localhost" {
		return true
	}
	return IsLoopbackIP(host)
}
