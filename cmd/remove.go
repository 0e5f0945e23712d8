package cmd

import (
	"fmt"
	"strconv"

	"grimm.is/pvegate/internal/natrules"
)

// RunRemove lists current rules, prompts for a public port and removes
// every rule registered for it.
func RunRemove(configFile string) int {
	if err := natrules.CheckPrivilege("remove"); err != nil {
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

	rules, err := mgr.List()
	if err != nil {
		return fail(err)
	}
	fmt.Println(renderRules(rules))
	if len(rules) == 0 {
		return 0
	}

	port, err := promptPublicPort()
	if err != nil {
		return fail(err)
	}

	removed, err := mgr.Remove(port)
	recordAudit(cfg, "remove", strconv.Itoa(port), nil, err)
	if err != nil {
		return fail(err)
	}

	if len(removed) == 0 {
		fmt.Println(styleMuted.Render(fmt.Sprintf("no rule stored for port %d, nothing removed", port)))
		return 0
	}
	for _, r := range removed {
		printSuccess("removed %s port %d -> %s", r.Protocol, r.PublicPort, r.Target())
	}
	return 0
}
