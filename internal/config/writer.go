package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// WriteDefault generates a commented starter config at path. Existing
// files are left untouched.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	cfg := Default()

	f := hclwrite.NewEmptyFile()
	body := f.Body()

	body.AppendUnstructuredTokens(hclwrite.Tokens{
		{Type: hclsyntax.TokenComment, Bytes: []byte("# Interface receiving public traffic; DNAT rules bind to it.\n")},
	})
	body.SetAttributeValue("wan_interface", cty.StringVal(cfg.WANInterface))
	body.SetAttributeValue("rules_file", cty.StringVal(cfg.RulesFile))
	body.SetAttributeValue("audit_file", cty.StringVal(cfg.AuditFile))
	body.AppendNewline()

	logBlock := body.AppendNewBlock("log", nil).Body()
	logBlock.SetAttributeValue("level", cty.StringVal(cfg.Log.Level))
	logBlock.SetAttributeValue("json", cty.BoolVal(cfg.Log.JSON))
	body.AppendNewline()

	tpl := body.AppendNewBlock("template", nil).Body()
	tpl.SetAttributeValue("vmid", cty.NumberIntVal(int64(cfg.Template.VMID)))
	tpl.SetAttributeValue("name", cty.StringVal(cfg.Template.Name))
	tpl.SetAttributeValue("storage", cty.StringVal(cfg.Template.Storage))
	tpl.SetAttributeValue("image_url", cty.StringVal(cfg.Template.ImageURL))
	tpl.SetAttributeValue("image_dir", cty.StringVal(cfg.Template.ImageDir))
	tpl.SetAttributeValue("cores", cty.NumberIntVal(int64(cfg.Template.Cores)))
	tpl.SetAttributeValue("memory_mb", cty.NumberIntVal(int64(cfg.Template.MemoryMB)))
	tpl.SetAttributeValue("bridge", cty.StringVal(cfg.Template.Bridge))
	tpl.SetAttributeValue("ci_user", cty.StringVal(cfg.Template.CIUser))
	body.AppendNewline()

	f2b := body.AppendNewBlock("fail2ban", nil).Body()
	f2b.SetAttributeValue("bantime", cty.StringVal(cfg.Fail2ban.BanTime))
	f2b.SetAttributeValue("findtime", cty.StringVal(cfg.Fail2ban.FindTime))
	f2b.SetAttributeValue("maxretry", cty.NumberIntVal(int64(cfg.Fail2ban.MaxRetry)))
	f2b.SetAttributeValue("ignoreip", cty.StringVal(cfg.Fail2ban.IgnoreIP))

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, f.Bytes(), 0640); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
