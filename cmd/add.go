package cmd

import (
	"fmt"

	"grimm.is/pvegate/internal/natrules"
)

// RunAdd gathers a forwarding tuple interactively and adds it.
func RunAdd(configFile string) int {
	if err := natrules.CheckPrivilege("add"); err != nil {
		return fail(err)
	}

	cfg, err := loadConfig(configFile)
	if err != nil {
		return fail(err)
	}

	in, err := promptAdd()
	if err != nil {
		return fail(err)
	}

	mgr, err := newManager(cfg)
	if err != nil {
		return fail(err)
	}

	added, err := mgr.Add(in.Protocol, in.TargetAddr, in.TargetPort, in.PublicPort)
	resource := fmt.Sprintf("%s/%d", in.Protocol, in.PublicPort)
	recordAudit(cfg, "add", resource, map[string]any{
		"target": fmt.Sprintf("%s:%d", in.TargetAddr, in.TargetPort),
	}, err)
	if err != nil {
		return fail(err)
	}

	for _, r := range added {
		printSuccess("forwarding %s port %d -> %s", r.Protocol, r.PublicPort, r.Target())
	}
	fmt.Println(styleMuted.Render("run `" + binaryName() + " save` to persist across reboots"))
	return 0
}
