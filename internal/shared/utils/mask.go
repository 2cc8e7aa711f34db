package utils

import (
	"strings"

	"github.com/go-sql-driver/mysql"
)

// MaskSecret keeps the first character of s for safe logging.
// Example: "fitment" -> "f***"
func MaskSecret(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return s[:1] + "***"
}

// MaskAddress hides the database name of a host[:port]/database address.
// A complete mysql DSN is reduced to its network address.
// Example: "db.internal:3306/parts" -> "db.internal:3306/***"
func MaskAddress(address string) string {
	if strings.ContainsAny(address, "@(") {
		if cfg, err := mysql.ParseDSN(address); err == nil {
			return cfg.Net + "(" + cfg.Addr + ")/***"
		}
		return "***"
	}

	host, _, found := strings.Cut(address, "/")
	if !found || host == "" {
		return address
	}
	return host + "/***"
}
