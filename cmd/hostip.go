package main

import (
	"net"
	"os"
)

// discoverHostIP returns the address clients should use to reach launched servers: the
// first IPv4 address the host name resolves to, then the source address of the default
// route, then loopback.
func discoverHostIP() string {
	if name, err := os.Hostname(); err == nil {
		if addrs, err := net.LookupHost(name); err == nil {
			if ip := firstIPv4(addrs, false); ip != "" {
				return ip
			}
		}
	}

	// UDP dial sends no packets, it only selects the outbound interface
	if conn, err := net.Dial("udp", "192.0.2.1:9"); err == nil {
		defer conn.Close()
		if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok && addr.IP.To4() != nil {
			return addr.IP.String()
		}
	}

	return "127.0.0.1"
}

// firstIPv4 returns the first IPv4 address in addrs, skipping loopback unless allowLoopback.
func firstIPv4(addrs []string, allowLoopback bool) string {
	for _, a := range addrs {
		ip := net.ParseIP(a)
		if ip == nil || ip.To4() == nil {
			continue
		}
		if ip.IsLoopback() && !allowLoopback {
			continue
		}
		return ip.String()
	}
	return ""
}
