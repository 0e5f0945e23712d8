package validation

import (
	"testing"
)

func TestValidateIPv4(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		// Happy paths
		{"simple", "10.0.0.5", false},
		{"zeros", "0.0.0.0", false},
		{"max octets", "255.255.255.255", false},
		{"typical target", "10.10.100.150", false},

		// Sad paths
		{"empty", "", true},
		{"octet over 255", "999.1.1.1", true},
		{"three octets", "10.0.0", true},
		{"five octets", "10.0.0.1.2", true},
		{"trailing dot", "10.0.0.", true},
		{"letters", "ten.0.0.1", true},
		{"negative", "-1.0.0.1", true},
		{"hostname", "vm.example.com", true},
		{"cidr", "10.0.0.0/24", true},
		{"ipv6", "::1", true},
		{"spaces", "10.0.0.5 ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIPv4(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIPv4(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePort(t *testing.T) {
	tests := []struct {
		name    string
		port    int
		wantErr bool
	}{
		{"min", 1, false},
		{"max", 65535, false},
		{"ssh", 22, false},
		{"zero", 0, true},
		{"past max", 65536, true},
		{"negative", -22, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePort(tt.port)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePort(%d) error = %v, wantErr %v", tt.port, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePortString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "2201", false},
		{"min", "1", false},
		{"max", "65535", false},
		{"empty", "", true},
		{"zero", "0", true},
		{"past max", "65536", true},
		{"not a number", "ssh", true},
		{"float", "22.5", true},
		{"injection", "22;reboot", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePortString(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePortString(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateProtocol(t *testing.T) {
	for _, ok := range []string{"tcp", "udp", "both"} {
		if err := ValidateProtocol(ok); err != nil {
			t.Errorf("ValidateProtocol(%q) unexpected error: %v", ok, err)
		}
	}
	for _, bad := range []string{"", "TCP", "icmp", "sctp", "tcp "} {
		if err := ValidateProtocol(bad); err == nil {
			t.Errorf("ValidateProtocol(%q) expected error", bad)
		}
	}
}

func TestValidateInterfaceName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		// Happy paths
		{"simple", "vmbr0", false},
		{"physical", "eth0", false},
		{"vlan", "vmbr0.100", false},

		// Sad paths
		{"empty", "", true},
		{"too long", "vmbr0123456789abc", true},
		{"space", "vmbr 0", true},
		{"semicolon injection", "vmbr0;rm", true},
		{"backtick", "vmbr0`id`", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInterfaceName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInterfaceName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
