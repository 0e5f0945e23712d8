// Package validation holds input validators shared by the CLI prompts and
// the rule manager. Everything here is syntactic; no reachability or
// host-state checks beyond interface existence.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// Valid interface name: alphanumeric, dash, underscore, dot (for VLANs), max 15 chars
	interfaceNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]{1,15}$`)

	// Dangerous characters that should never appear in values handed to host tools
	dangerousChars = []string{";", "|", "&", "$", "`", "(", ")", "<", ">", "\\", "\"", "'", "\n", "\r"}
)

// ValidateIPv4 validates a dotted-quad IPv4 literal. Shorthand forms such
// as "10.0.0" and octets above 255 are rejected.
func ValidateIPv4(s string) error {
	if s == "" {
		return fmt.Errorf("address cannot be empty")
	}

	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return fmt.Errorf("invalid IPv4 address: %s (need four dotted octets)", s)
	}
	for _, p := range parts {
		if p == "" || len(p) > 3 {
			return fmt.Errorf("invalid IPv4 address: %s", s)
		}
		for _, c := range p {
			if c < '0' || c > '9' {
				return fmt.Errorf("invalid IPv4 address: %s", s)
			}
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("invalid IPv4 address: %s", s)
		}
		if n > 255 {
			return fmt.Errorf("invalid IPv4 address: %s (octet %s out of range)", s, p)
		}
	}
	return nil
}

// ValidatePort validates a port number in 1-65535.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port %d out of range (1-65535)", port)
	}
	return nil
}

// ValidatePortString validates a decimal port string in 1-65535.
func ValidatePortString(s string) error {
	if s == "" {
		return fmt.Errorf("port cannot be empty")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid port: %s", s)
	}
	return ValidatePort(n)
}

// ValidateProtocol validates a protocol selector. "both" is accepted as a
// request for tcp and udp together.
func ValidateProtocol(s string) error {
	switch s {
	case "tcp", "udp", "both":
		return nil
	}
	return fmt.Errorf("invalid protocol: %s (must be tcp, udp or both)", s)
}

// ValidateInterfaceName validates a network interface name syntactically.
func ValidateInterfaceName(name string) error {
	if name == "" {
		return fmt.Errorf("interface name cannot be empty")
	}

	if len(name) > 15 {
		return fmt.Errorf("interface name too long (max 15 characters): %s", name)
	}

	if !interfaceNameRegex.MatchString(name) {
		return fmt.Errorf("invalid interface name: %s (must be alphanumeric with -_.)", name)
	}

	for _, char := range dangerousChars {
		if strings.Contains(name, char) {
			return fmt.Errorf("interface name contains dangerous character: %s", char)
		}
	}

	return nil
}
