package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const defaultPort = 6600

// Addr resolves the MPD dial target. Precedence: config file, then the
// MPD_HOST/MPD_PORT environment, then localhost:6600. A host containing a
// "/" is a Unix socket path. MPD_HOST may carry a password prefix in the
// conventional "password@host" form; a configured password wins over it.
func (c *Config) Addr() (network, addr, password string) {
	host := c.MPD.Host
	port := c.MPD.Port
	password = c.MPD.Password

	if host == "" {
		envHost, envPass := parseMPDHostEnv()
		if envHost != "" {
			host = envHost
		}
		if password == "" {
			password = envPass
		}
		if p, err := strconv.Atoi(os.Getenv("MPD_PORT")); err == nil && p > 0 {
			port = p
		}
	}

	if host == "" {
		host = "localhost"
	}
	if port <= 0 {
		port = defaultPort
	}

	if strings.Contains(host, "/") {
		return "unix", host, password
	}
	return "tcp", fmt.Sprintf("%s:%d", host, port), password
}

func parseMPDHostEnv() (host, password string) {
	v := os.Getenv("MPD_HOST")
	if v == "" {
		return "", ""
	}
	if at := strings.IndexByte(v, '@'); at >= 0 {
		password = v[:at]
		v = v[at+1:]
	}
	return v, password
}
