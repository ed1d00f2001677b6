package strikes

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Fingerprint identifies a submitting client across requests. Counters
// are keyed by its hash, so no raw identity lands in redis.
type Fingerprint struct {
	UserID    string
	Token     string
	IP        string
	UserAgent string
}

// ID returns the hashed key component for this fingerprint.
func (f Fingerprint) ID() string {
	raw := f.UserID + "|" + f.Token + "|" + f.IP + "|" + f.UserAgent
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// FromRequest builds a fingerprint from the usual identity headers,
// falling back to the connection address.
func FromRequest(ctx *fiber.Ctx) Fingerprint {
	return Fingerprint{
		UserID:    strings.ToLower(strings.TrimSpace(userID(ctx))),
		Token:     strings.ToLower(strings.TrimSpace(authToken(ctx))),
		IP:        clientIP(ctx),
		UserAgent: strings.ToLower(strings.TrimSpace(ctx.Get("User-Agent"))),
	}
}

func userID(ctx *fiber.Ctx) string {
	userHeaders := []string{
		"X-User-ID",
		"X-User-Id",
		"X-UserID",
		"User-ID",
	}

	for _, header := range userHeaders {
		if value := ctx.Get(header); value != "" {
			return value
		}
	}
	return ""
}

func authToken(ctx *fiber.Ctx) string {
	authHeader := ctx.Get("Authorization")
	if authHeader != "" {
		if strings.HasPrefix(authHeader, "Bearer ") {
			return strings.TrimPrefix(authHeader, "Bearer ")
		}
		return authHeader
	}

	tokenHeaders := []string{
		"X-Access-Token",
		"X-Auth-Token",
	}

	for _, header := range tokenHeaders {
		if token := ctx.Get(header); token != "" {
			return token
		}
	}
	return ""
}

func clientIP(ctx *fiber.Ctx) string {
	ipHeaders := []string{
		"X-Real-IP",
		"X-Forwarded-For",
		"True-Client-IP",
		"CF-Connecting-IP",
	}

	for _, header := range ipHeaders {
		if value := ctx.Get(header); value != "" {
			ips := strings.Split(value, ",")
			if len(ips) > 0 {
				ip := strings.TrimSpace(ips[0])
				if net.ParseIP(ip) != nil {
					return ip
				}
			}
		}
	}
	return strings.TrimSpace(ctx.IP())
}
