package cmd

import (
	"fmt"

	"grimm.is/pvegate/internal/command"
	"grimm.is/pvegate/internal/fail2ban"
	"grimm.is/pvegate/internal/natrules"
)

// RunFail2ban writes the jail and filter configuration protecting SSH and
// the Proxmox web UI, restarts the service and prints jail status.
func RunFail2ban(configFile string) int {
	if err := natrules.CheckPrivilege("fail2ban"); err != nil {
		return fail(err)
	}

	cfg, err := loadConfig(configFile)
	if err != nil {
		return fail(err)
	}

	prov := fail2ban.NewProvisioner(cfg.Fail2ban, command.NewRunner())
	err = prov.Configure()
	recordAudit(cfg, "fail2ban", "jail.local", map[string]any{
		"bantime":  cfg.Fail2ban.BanTime,
		"maxretry": cfg.Fail2ban.MaxRetry,
	}, err)
	if err != nil {
		return fail(err)
	}
	printSuccess("fail2ban configured (jails: sshd, proxmox)")

	status, err := prov.Status()
	if err != nil {
		// Status is informational; the configuration already landed.
		fmt.Println(styleMuted.Render("could not read jail status: " + err.Error()))
		return 0
	}
	fmt.Println(status)
	return 0
}
