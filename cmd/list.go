package cmd

import (
	"fmt"
	"os"

	"grimm.is/pvegate/internal/natrules"
)

// RunList prints the stored rules. It always exits zero; a broken store
// is reported on stderr but does not change the exit code, matching the
// historical behavior scripts depend on. Listing reads only the store and
// never touches the firewall, so it needs no privileges.
func RunList(configFile string) int {
	cfg, err := loadConfig(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 0
	}

	rules, err := natrules.NewFileStore(cfg.RulesFile).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 0
	}

	fmt.Println(renderRules(rules))
	return 0
}
