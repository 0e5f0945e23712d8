package cmd

import (
	"grimm.is/pvegate/internal/command"
	"grimm.is/pvegate/internal/natrules"
	"grimm.is/pvegate/internal/template"
)

// RunTemplate builds the cloud-init-ready VM template described by the
// config's template block.
func RunTemplate(configFile string) int {
	if err := natrules.CheckPrivilege("template"); err != nil {
		return fail(err)
	}

	cfg, err := loadConfig(configFile)
	if err != nil {
		return fail(err)
	}

	builder := template.NewBuilder(cfg.Template, command.NewRunner())
	err = builder.Build()
	recordAudit(cfg, "template", cfg.Template.Name, map[string]any{
		"vmid":    cfg.Template.VMID,
		"storage": cfg.Template.Storage,
	}, err)
	if err != nil {
		return fail(err)
	}

	printSuccess("template %s (vmid %d) ready; clone it with `qm clone %d <newid>`",
		cfg.Template.Name, cfg.Template.VMID, cfg.Template.VMID)
	return 0
}
