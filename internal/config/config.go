// Package config provides HCL configuration handling for the toolkit.
package config

import (
	"fmt"

	"grimm.is/pvegate/internal/brand"
	"grimm.is/pvegate/internal/validation"
)

// Config is the root configuration.
type Config struct {
	// WANInterface is the interface carrying inbound public traffic.
	// All DNAT rules are bound to it.
	WANInterface string `hcl:"wan_interface,optional"`

	// RulesFile is the flat rule store path.
	RulesFile string `hcl:"rules_file,optional"`

	// AuditFile is the append-only audit trail path.
	AuditFile string `hcl:"audit_file,optional"`

	Log      *LogConfig      `hcl:"log,block"`
	Template *TemplateConfig `hcl:"template,block"`
	Fail2ban *Fail2banConfig `hcl:"fail2ban,block"`
}

// LogConfig controls logger behavior.
type LogConfig struct {
	Level string `hcl:"level,optional"`
	JSON  bool   `hcl:"json,optional"`
}

// TemplateConfig holds VM template build parameters.
type TemplateConfig struct {
	VMID       int    `hcl:"vmid,optional"`
	Name       string `hcl:"name,optional"`
	Storage    string `hcl:"storage,optional"`
	ImageURL   string `hcl:"image_url,optional"`
	ImageDir   string `hcl:"image_dir,optional"`
	Cores      int    `hcl:"cores,optional"`
	MemoryMB   int    `hcl:"memory_mb,optional"`
	Bridge     string `hcl:"bridge,optional"`
	CIUser     string `hcl:"ci_user,optional"`
	SSHKeyFile string `hcl:"ssh_key_file,optional"`
}

// Fail2banConfig holds jail parameters written to jail.local.
type Fail2banConfig struct {
	BanTime  string `hcl:"bantime,optional"`
	FindTime string `hcl:"findtime,optional"`
	MaxRetry int    `hcl:"maxretry,optional"`
	IgnoreIP string `hcl:"ignoreip,optional"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills zero-valued fields with built-in defaults.
func (c *Config) applyDefaults() {
	if c.WANInterface == "" {
		c.WANInterface = "vmbr0"
	}
	if c.RulesFile == "" {
		c.RulesFile = brand.DefaultRulesFile()
	}
	if c.AuditFile == "" {
		c.AuditFile = brand.DefaultAuditFile()
	}

	if c.Log == nil {
		c.Log = &LogConfig{}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	if c.Template == nil {
		c.Template = &TemplateConfig{}
	}
	t := c.Template
	if t.VMID == 0 {
		t.VMID = 9000
	}
	if t.Name == "" {
		t.Name = "debian-cloudinit"
	}
	if t.Storage == "" {
		t.Storage = "local-lvm"
	}
	if t.ImageURL == "" {
		t.ImageURL = "https://cloud.debian.org/images/cloud/bookworm/latest/debian-12-generic-amd64.qcow2"
	}
	if t.ImageDir == "" {
		t.ImageDir = "/var/lib/vz/template/cache"
	}
	if t.Cores == 0 {
		t.Cores = 2
	}
	if t.MemoryMB == 0 {
		t.MemoryMB = 2048
	}
	if t.Bridge == "" {
		t.Bridge = "vmbr1"
	}
	if t.CIUser == "" {
		t.CIUser = "debian"
	}

	if c.Fail2ban == nil {
		c.Fail2ban = &Fail2banConfig{}
	}
	f := c.Fail2ban
	if f.BanTime == "" {
		f.BanTime = "1h"
	}
	if f.FindTime == "" {
		f.FindTime = "10m"
	}
	if f.MaxRetry == 0 {
		f.MaxRetry = 5
	}
	if f.IgnoreIP == "" {
		f.IgnoreIP = "127.0.0.1/8"
	}
}

// Validate checks configuration consistency. It is syntactic only; the
// WAN interface is not required to exist until a firewall operation runs.
func (c *Config) Validate() error {
	if err := validation.ValidateInterfaceName(c.WANInterface); err != nil {
		return fmt.Errorf("wan_interface: %w", err)
	}
	if err := validation.ValidateInterfaceName(c.Template.Bridge); err != nil {
		return fmt.Errorf("template.bridge: %w", err)
	}
	if c.RulesFile == "" {
		return fmt.Errorf("rules_file cannot be empty")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	if c.Template.VMID < 100 {
		return fmt.Errorf("template.vmid: %d below Proxmox minimum of 100", c.Template.VMID)
	}
	return nil
}
