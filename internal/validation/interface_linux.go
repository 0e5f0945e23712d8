//go:build linux
// +build linux

package validation

import (
	"fmt"

	"github.com/vishvananda/netlink"
)

// InterfaceExists reports whether the named link is present on the host.
func InterfaceExists(name string) error {
	if err := ValidateInterfaceName(name); err != nil {
		return err
	}
	if _, err := netlink.LinkByName(name); err != nil {
		return fmt.Errorf("interface %s not found: %w", name, err)
	}
	return nil
}
