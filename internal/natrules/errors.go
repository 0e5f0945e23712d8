package natrules

import (
	"fmt"
	"os"
)

// ValidationError reports malformed input or a duplicate public port. The
// operation was aborted before any store or firewall mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// FirewallApplyError reports a failed firewall command. Store mutations
// already performed are not rolled back.
type FirewallApplyError struct {
	Op   string
	Rule Rule
	Err  error
}

func (e *FirewallApplyError) Error() string {
	return fmt.Sprintf("firewall %s failed for %s: %v", e.Op, e.Rule, e.Err)
}

func (e *FirewallApplyError) Unwrap() error { return e.Err }

// PersistenceError reports a failed save/restore delegation or a rule
// store write failure. No retry is attempted.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// PrivilegeError reports an operation requiring root invoked without it.
// The operation was not attempted.
type PrivilegeError struct {
	Op string
}

func (e *PrivilegeError) Error() string {
	return fmt.Sprintf("operation %s requires root privileges", e.Op)
}

// CheckPrivilege returns a PrivilegeError unless running as root.
func CheckPrivilege(op string) error {
	if os.Geteuid() != 0 {
		return &PrivilegeError{Op: op}
	}
	return nil
}
