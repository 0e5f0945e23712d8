package natrules

import (
	"fmt"

	"grimm.is/pvegate/internal/logging"
	"grimm.is/pvegate/internal/validation"
)

// Manager owns the rule store and keeps the firewall NAT table
// synchronized with it. The store is written first; a firewall failure
// after that leaves the two inconsistent and is reported, not rolled back.
type Manager struct {
	store Store
	fw    Controller
	log   *logging.Logger
}

// NewManager creates a manager over the given store and controller.
func NewManager(store Store, fw Controller) *Manager {
	return &Manager{
		store: store,
		fw:    fw,
		log:   logging.WithComponent("natrules"),
	}
}

// Add validates the tuple, appends one rule per protocol variant to the
// store and inserts the matching firewall rules. It returns the rules
// created. A duplicate (protocol, publicPort) pair fails validation and
// leaves the store byte-for-byte unchanged.
func (m *Manager) Add(protocol, targetAddr string, targetPort, publicPort int) ([]Rule, error) {
	if err := validation.ValidateProtocol(protocol); err != nil {
		return nil, &ValidationError{Field: "protocol", Reason: err.Error()}
	}
	if err := validation.ValidateIPv4(targetAddr); err != nil {
		return nil, &ValidationError{Field: "target address", Reason: err.Error()}
	}
	if err := validation.ValidatePort(targetPort); err != nil {
		return nil, &ValidationError{Field: "target port", Reason: err.Error()}
	}
	if err := validation.ValidatePort(publicPort); err != nil {
		return nil, &ValidationError{Field: "public port", Reason: err.Error()}
	}

	protocols, err := ExpandSelector(protocol)
	if err != nil {
		return nil, &ValidationError{Field: "protocol", Reason: err.Error()}
	}

	existing, err := m.store.Load()
	if err != nil {
		return nil, &PersistenceError{Op: "load rule store", Err: err}
	}

	// All variants are checked before anything is written, so a "both"
	// request colliding on either protocol mutates nothing.
	for _, p := range protocols {
		for _, r := range existing {
			if r.Protocol == p && r.PublicPort == publicPort {
				return nil, &ValidationError{
					Field:  "public port",
					Reason: fmt.Sprintf("port %d already forwarded for %s (to %s)", publicPort, p, r.Target()),
				}
			}
		}
	}

	rules := make([]Rule, 0, len(protocols))
	for _, p := range protocols {
		rules = append(rules, Rule{
			Protocol:   p,
			PublicPort: publicPort,
			TargetAddr: targetAddr,
			TargetPort: targetPort,
		})
	}

	if err := m.store.Append(rules...); err != nil {
		return nil, &PersistenceError{Op: "append rule store", Err: err}
	}

	for _, r := range rules {
		if err := m.fw.Insert(r); err != nil {
			// Store already holds the rule. Reported as-is; the
			// operator reconciles manually.
			m.log.Error("firewall apply failed after store write", "rule", r.String(), "error", err)
			return rules, err
		}
		m.log.Info("rule added", "rule", r.String())
	}
	return rules, nil
}

// Remove deletes every rule for the given public port. The DNAT target
// handed to the firewall is reconstructed from the store, not from the
// live table; if the two drifted, deletion targets the stored mapping.
// An unknown port is a no-op, not an error.
func (m *Manager) Remove(publicPort int) ([]Rule, error) {
	if err := validation.ValidatePort(publicPort); err != nil {
		return nil, &ValidationError{Field: "public port", Reason: err.Error()}
	}

	existing, err := m.store.Load()
	if err != nil {
		return nil, &PersistenceError{Op: "load rule store", Err: err}
	}

	var matches []Rule
	for _, r := range existing {
		if r.PublicPort == publicPort {
			matches = append(matches, r)
		}
	}
	if len(matches) == 0 {
		m.log.Info("no rule for port, nothing to remove", "public_port", publicPort)
		return nil, nil
	}

	// Absent-rule deletions are suppressed inside the controller; only
	// real command failures surface here, and the store keeps the rule
	// so the state stays visible.
	for _, r := range matches {
		if err := m.fw.Delete(r); err != nil {
			return nil, err
		}
	}

	removed, err := m.store.Delete(publicPort)
	if err != nil {
		return nil, &PersistenceError{Op: "delete from rule store", Err: err}
	}
	for _, r := range removed {
		m.log.Info("rule removed", "rule", r.String())
	}
	return removed, nil
}

// List returns all stored rules in insertion order.
func (m *Manager) List() ([]Rule, error) {
	rules, err := m.store.Load()
	if err != nil {
		return nil, &PersistenceError{Op: "load rule store", Err: err}
	}
	return rules, nil
}

// Save persists the live NAT table as the host's startup rule set.
func (m *Manager) Save() error {
	if err := m.fw.Persist(); err != nil {
		return err
	}
	m.log.Info("NAT table saved")
	return nil
}

// Restore flushes the managed interface's NAT rules, re-applies every
// stored rule in store order, then saves. The first failing apply aborts,
// leaving whatever was applied before it.
func (m *Manager) Restore() error {
	rules, err := m.store.Load()
	if err != nil {
		return &PersistenceError{Op: "load rule store", Err: err}
	}

	if err := m.fw.Flush(); err != nil {
		return err
	}

	for _, r := range rules {
		if err := m.fw.Insert(r); err != nil {
			return err
		}
	}
	m.log.Info("rules restored", "count", len(rules))

	return m.Save()
}
