package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GetClientIP resolves the originating client address behind proxies.
// Cloudflare and X-Forwarded-For headers win over the socket address.
func GetClientIP(c *fiber.Ctx) (ipv4, ipv6 string) {
	candidates := []string{c.Get("CF-Connecting-IP")}
	for _, part := range strings.Split(c.Get("X-Forwarded-For"), ",") {
		candidates = append(candidates, strings.TrimSpace(part))
	}
	candidates = append(candidates, c.Get("X-Real-IP"), c.IP())

	for _, ip := range candidates {
		if ip == "" {
			continue
		}
		// IPv4-mapped IPv6 (::ffff:192.0.2.1) counts as IPv4
		if mapped := strings.TrimPrefix(ip, "::ffff:"); strings.Contains(mapped, ".") && !strings.Contains(mapped, ":") {
			if ipv4 == "" {
				ipv4 = mapped
			}
			continue
		}
		if strings.Contains(ip, ":") {
			if ipv6 == "" {
				ipv6 = ip
			}
			continue
		}
		if ipv4 == "" {
			ipv4 = ip
		}
	}
	return ipv4, ipv6
}
