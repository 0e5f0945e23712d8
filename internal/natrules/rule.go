package natrules

import (
	"fmt"
	"strconv"
	"strings"
)

// Protocol is a transport protocol a rule applies to.
type Protocol string

const (
	ProtocolTCP Protocol = "tcp"
	ProtocolUDP Protocol = "udp"

	// SelectorBoth requests a rule for tcp and udp together. It is a
	// prompt-level selector, never stored: a "both" add expands to two
	// stored rules.
	SelectorBoth = "both"
)

// ExpandSelector maps a protocol selector to the concrete protocols it
// covers.
func ExpandSelector(sel string) ([]Protocol, error) {
	switch sel {
	case "tcp":
		return []Protocol{ProtocolTCP}, nil
	case "udp":
		return []Protocol{ProtocolUDP}, nil
	case SelectorBoth:
		return []Protocol{ProtocolTCP, ProtocolUDP}, nil
	}
	return nil, fmt.Errorf("invalid protocol selector: %s", sel)
}

// Rule is one port-forwarding mapping: WAN traffic to PublicPort/Protocol
// is DNATed to TargetAddr:TargetPort.
type Rule struct {
	Protocol   Protocol
	PublicPort int
	TargetAddr string
	TargetPort int
}

// Target returns the DNAT destination in addr:port form.
func (r Rule) Target() string {
	return fmt.Sprintf("%s:%d", r.TargetAddr, r.TargetPort)
}

// Line renders the rule in store format:
// "tcp 2201 10.10.100.150 22".
func (r Rule) Line() string {
	return fmt.Sprintf("%s %d %s %d", r.Protocol, r.PublicPort, r.TargetAddr, r.TargetPort)
}

func (r Rule) String() string {
	return fmt.Sprintf("%s/%d -> %s", r.Protocol, r.PublicPort, r.Target())
}

// ParseLine parses one store line. Fields are whitespace-separated in the
// fixed order protocol, publicPort, targetAddress, targetPort.
func ParseLine(line string) (Rule, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return Rule{}, fmt.Errorf("malformed rule line: %q (want 4 fields, got %d)", line, len(fields))
	}

	proto := Protocol(fields[0])
	if proto != ProtocolTCP && proto != ProtocolUDP {
		return Rule{}, fmt.Errorf("malformed rule line: %q (unknown protocol %s)", line, fields[0])
	}

	publicPort, err := strconv.Atoi(fields[1])
	if err != nil {
		return Rule{}, fmt.Errorf("malformed rule line: %q (bad public port)", line)
	}
	targetPort, err := strconv.Atoi(fields[3])
	if err != nil {
		return Rule{}, fmt.Errorf("malformed rule line: %q (bad target port)", line)
	}

	return Rule{
		Protocol:   proto,
		PublicPort: publicPort,
		TargetAddr: fields[2],
		TargetPort: targetPort,
	}, nil
}
