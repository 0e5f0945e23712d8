package cmd

import (
	"grimm.is/pvegate/internal/natrules"
)

// RunSave persists the live NAT table as the boot-time rule set.
func RunSave(configFile string) int {
	if err := natrules.CheckPrivilege("save"); err != nil {
		return fail(err)
	}

	cfg, err := loadConfig(configFile)
	if err != nil {
		return fail(err)
	}

	mgr, err := newManager(cfg)
	if err != nil {
		return fail(err)
	}

	err = mgr.Save()
	recordAudit(cfg, "save", "nat-table", nil, err)
	if err != nil {
		return fail(err)
	}
	printSuccess("NAT table saved")
	return 0
}

// RunRestore flushes the WAN interface's NAT rules and re-applies every
// stored rule, then saves.
func RunRestore(configFile string) int {
	if err := natrules.CheckPrivilege("restore"); err != nil {
		return fail(err)
	}

	cfg, err := loadConfig(configFile)
	if err != nil {
		return fail(err)
	}

	mgr, err := newManager(cfg)
	if err != nil {
		return fail(err)
	}

	err = mgr.Restore()
	recordAudit(cfg, "restore", "nat-table", map[string]any{
		"interface": cfg.WANInterface,
	}, err)
	if err != nil {
		return fail(err)
	}
	printSuccess("rules restored from %s", cfg.RulesFile)
	return 0
}
