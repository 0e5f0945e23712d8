package cmd

import (
	"fmt"
	"os"
	"strings"

	"grimm.is/pvegate/internal/command"
	"grimm.is/pvegate/internal/config"
	"grimm.is/pvegate/internal/natrules"
)

// debconf preseed so iptables-persistent installs without a prompt and
// saves current rules at package-install time.
const persistentPreseed = `iptables-persistent iptables-persistent/autosave_v4 boolean true
iptables-persistent iptables-persistent/autosave_v6 boolean true
`

// RunInstall installs and enables the host packages the toolkit depends
// on, and writes a starter config if none exists.
func RunInstall(configFile string) int {
	if err := natrules.CheckPrivilege("install"); err != nil {
		return fail(err)
	}

	cfg, err := loadConfig(configFile)
	if err != nil {
		return fail(err)
	}

	runner := command.NewRunner()

	fmt.Println("Updating package lists...")
	if err := runner.Run("apt-get", "update"); err != nil {
		return fail(err)
	}

	if err := runner.RunInput(persistentPreseed, "debconf-set-selections"); err != nil {
		return fail(fmt.Errorf("preseed iptables-persistent: %w", err))
	}

	packages := []string{"iptables-persistent", "fail2ban"}
	fmt.Printf("Installing %s...\n", strings.Join(packages, ", "))
	args := append([]string{"install", "-y"}, packages...)
	if err := runner.Run("apt-get", args...); err != nil {
		return fail(err)
	}

	for _, unit := range []string{"netfilter-persistent", "fail2ban"} {
		if err := runner.Run("systemctl", "enable", unit); err != nil {
			return fail(fmt.Errorf("enable %s: %w", unit, err))
		}
	}

	if _, statErr := os.Stat(configFile); os.IsNotExist(statErr) {
		if err := config.WriteDefault(configFile); err != nil {
			return fail(err)
		}
		printSuccess("wrote starter config to %s", configFile)
	} else {
		fmt.Println(styleMuted.Render("config already present at " + configFile + ", left untouched"))
	}

	recordAudit(cfg, "install", strings.Join(packages, ","), nil, nil)
	printSuccess("host packages installed and enabled")
	fmt.Println(styleMuted.Render("next: `" + binaryName() + " fail2ban` to configure jails"))
	return 0
}
