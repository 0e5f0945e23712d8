// Package cmd implements the CLI subcommands. Each Run function returns
// the process exit code; main owns os.Exit.
package cmd

import (
	"fmt"
	"os"

	"grimm.is/pvegate/internal/audit"
	"grimm.is/pvegate/internal/brand"
	"grimm.is/pvegate/internal/command"
	"grimm.is/pvegate/internal/config"
	"grimm.is/pvegate/internal/logging"
	"grimm.is/pvegate/internal/natrules"
	"grimm.is/pvegate/internal/validation"
)

// binaryName returns the installed command name for user-facing hints.
func binaryName() string {
	return brand.BinaryName
}

// fail prints an error to stderr and returns the non-zero exit code.
func fail(err error) int {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}

// loadConfig reads the config file and wires the logger from it.
func loadConfig(configFile string) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	logging.SetDefault(logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Output: os.Stderr,
		JSON:   cfg.Log.JSON,
	}))
	return cfg, nil
}

// newManager builds the rule manager against the host firewall.
func newManager(cfg *config.Config) (*natrules.Manager, error) {
	if err := validation.InterfaceExists(cfg.WANInterface); err != nil {
		return nil, err
	}
	fw, err := natrules.NewIptablesController(cfg.WANInterface, command.NewRunner())
	if err != nil {
		return nil, err
	}
	return natrules.NewManager(natrules.NewFileStore(cfg.RulesFile), fw), nil
}

// recordAudit appends an audit event. Best effort: a broken trail is
// logged and never fails the operation it describes.
func recordAudit(cfg *config.Config, action, resource string, details map[string]any, opErr error) {
	trail, err := audit.NewTrail(cfg.AuditFile)
	if err == nil {
		err = trail.Record(action, resource, details, opErr)
	}
	if err != nil {
		logging.Warn("audit trail write failed", "error", err)
	}
}
