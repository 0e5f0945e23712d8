//go:build !linux
// +build !linux

package validation

// InterfaceExists only checks syntax off Linux; link lookup needs
// netlink.
func InterfaceExists(name string) error {
	return ValidateInterfaceName(name)
}
