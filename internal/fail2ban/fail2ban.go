// Package fail2ban installs jail and filter configuration protecting SSH
// and the Proxmox web UI, then enables the service.
package fail2ban

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"grimm.is/pvegate/internal/command"
	"grimm.is/pvegate/internal/config"
	"grimm.is/pvegate/internal/logging"
)

// jailTemplate is rendered to jail.local. The proxmox jail watches
// pvedaemon authentication failures in the daemon log.
const jailTemplate = `[DEFAULT]
bantime  = {{ .BanTime }}
findtime = {{ .FindTime }}
maxretry = {{ .MaxRetry }}
ignoreip = {{ .IgnoreIP }}

[sshd]
enabled = true
port    = ssh
logpath = %(sshd_log)s
backend = %(sshd_backend)s

[proxmox]
enabled  = true
port     = https,http,8006
filter   = proxmox
logpath  = /var/log/daemon.log
`

// proxmoxFilter matches pvedaemon authentication failures.
const proxmoxFilter = `[Definition]
failregex = pvedaemon\[.*authentication failure; rhost=<HOST> user=.* msg=.*
ignoreregex =
`

// Jails configured by this package, in status-report order.
var Jails = []string{"sshd", "proxmox"}

// Provisioner writes fail2ban configuration and manages the service.
type Provisioner struct {
	cfg    *config.Fail2banConfig
	runner command.Runner
	log    *logging.Logger

	// etcDir is /etc/fail2ban in production, a temp dir in tests.
	etcDir string
}

// NewProvisioner creates a provisioner over the host's /etc/fail2ban.
func NewProvisioner(cfg *config.Fail2banConfig, runner command.Runner) *Provisioner {
	return &Provisioner{
		cfg:    cfg,
		runner: runner,
		log:    logging.WithComponent("fail2ban"),
		etcDir: "/etc/fail2ban",
	}
}

// JailLocalPath returns the jail.local destination.
func (p *Provisioner) JailLocalPath() string {
	return filepath.Join(p.etcDir, "jail.local")
}

// FilterPath returns the proxmox filter destination.
func (p *Provisioner) FilterPath() string {
	return filepath.Join(p.etcDir, "filter.d", "proxmox.conf")
}

// Configure renders jail.local and the proxmox filter, backing up any
// pre-existing jail.local, then enables and reloads the service.
func (p *Provisioner) Configure() error {
	jail, err := p.renderJail()
	if err != nil {
		return err
	}

	jailPath := p.JailLocalPath()
	if prev, err := os.ReadFile(jailPath); err == nil {
		bak := jailPath + ".bak"
		p.log.Info("backing up existing jail.local", "dest", bak)
		if err := os.WriteFile(bak, prev, 0644); err != nil {
			return fmt.Errorf("backup jail.local: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(p.FilterPath()), 0755); err != nil {
		return fmt.Errorf("create filter.d: %w", err)
	}
	if err := os.WriteFile(jailPath, jail, 0644); err != nil {
		return fmt.Errorf("write jail.local: %w", err)
	}
	if err := os.WriteFile(p.FilterPath(), []byte(proxmoxFilter), 0644); err != nil {
		return fmt.Errorf("write proxmox filter: %w", err)
	}
	p.log.Info("fail2ban configuration written",
		"jails", strings.Join(Jails, ","),
		"bantime", p.cfg.BanTime,
		"maxretry", p.cfg.MaxRetry)

	if err := p.runner.Run("systemctl", "enable", "--now", "fail2ban"); err != nil {
		return fmt.Errorf("enable fail2ban service: %w", err)
	}
	if err := p.runner.Run("fail2ban-client", "reload"); err != nil {
		return fmt.Errorf("reload fail2ban: %w", err)
	}
	return nil
}

// Status returns the fail2ban-client status output for each managed jail.
func (p *Provisioner) Status() (string, error) {
	var b strings.Builder
	for _, jail := range Jails {
		out, err := p.runner.Output("fail2ban-client", "status", jail)
		if err != nil {
			return "", fmt.Errorf("status for jail %s: %w", jail, err)
		}
		b.Write(out)
	}
	return b.String(), nil
}

func (p *Provisioner) renderJail() ([]byte, error) {
	tmpl, err := template.New("jail.local").Parse(jailTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse jail template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, p.cfg); err != nil {
		return nil, fmt.Errorf("render jail.local: %w", err)
	}
	return buf.Bytes(), nil
}
