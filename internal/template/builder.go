// Package template builds a cloud-init-ready VM template from a Debian
// cloud image by driving qm and virt-customize on a Proxmox VE host.
package template

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"grimm.is/pvegate/internal/command"
	"grimm.is/pvegate/internal/config"
	"grimm.is/pvegate/internal/logging"
)

// Builder runs the one-shot template provisioning flow. Steps execute in
// order and the first failure aborts; partially created VMs are left for
// the operator to inspect.
type Builder struct {
	cfg    *config.TemplateConfig
	runner command.Runner
	log    *logging.Logger
}

// NewBuilder creates a builder over the given config and runner.
func NewBuilder(cfg *config.TemplateConfig, runner command.Runner) *Builder {
	return &Builder{
		cfg:    cfg,
		runner: runner,
		log:    logging.WithComponent("template"),
	}
}

// ImagePath returns where the cloud image is cached locally.
func (b *Builder) ImagePath() string {
	return filepath.Join(b.cfg.ImageDir, filepath.Base(b.cfg.ImageURL))
}

// Build provisions the template VM and converts it to a template.
func (b *Builder) Build() error {
	vmid := strconv.Itoa(b.cfg.VMID)

	// qm status exits non-zero for unknown VMIDs, so success here means
	// the ID is taken.
	if _, err := b.runner.Output("qm", "status", vmid); err == nil {
		return fmt.Errorf("VM %s already exists, pick another template vmid or destroy it first", vmid)
	}

	img := b.ImagePath()
	if _, err := os.Stat(img); os.IsNotExist(err) {
		b.log.Info("downloading cloud image", "url", b.cfg.ImageURL, "dest", img)
		if err := os.MkdirAll(b.cfg.ImageDir, 0755); err != nil {
			return fmt.Errorf("create image dir: %w", err)
		}
		if err := b.runner.Run("wget", "-q", "-O", img, b.cfg.ImageURL); err != nil {
			return fmt.Errorf("download cloud image: %w", err)
		}
	} else {
		b.log.Info("using cached cloud image", "path", img)
	}

	b.log.Info("installing qemu-guest-agent into image")
	if err := b.runner.Run("virt-customize", "-a", img,
		"--install", "qemu-guest-agent",
		"--run-command", "systemctl enable qemu-guest-agent"); err != nil {
		return fmt.Errorf("customize image: %w", err)
	}

	b.log.Info("creating VM", "vmid", vmid, "name", b.cfg.Name)
	if err := b.runner.Run("qm", "create", vmid,
		"--name", b.cfg.Name,
		"--ostype", "l26",
		"--memory", strconv.Itoa(b.cfg.MemoryMB),
		"--cores", strconv.Itoa(b.cfg.Cores),
		"--net0", "virtio,bridge="+b.cfg.Bridge,
		"--serial0", "socket",
		"--vga", "serial0",
		"--agent", "enabled=1"); err != nil {
		return fmt.Errorf("create VM: %w", err)
	}

	b.log.Info("importing disk", "storage", b.cfg.Storage)
	if err := b.runner.Run("qm", "importdisk", vmid, img, b.cfg.Storage); err != nil {
		return fmt.Errorf("import disk: %w", err)
	}

	if err := b.runner.Run("qm", "set", vmid,
		"--scsihw", "virtio-scsi-pci",
		"--scsi0", fmt.Sprintf("%s:vm-%s-disk-0", b.cfg.Storage, vmid)); err != nil {
		return fmt.Errorf("attach disk: %w", err)
	}

	if err := b.runner.Run("qm", "set", vmid, "--ide2", b.cfg.Storage+":cloudinit"); err != nil {
		return fmt.Errorf("attach cloud-init drive: %w", err)
	}

	if err := b.runner.Run("qm", "set", vmid, "--boot", "order=scsi0"); err != nil {
		return fmt.Errorf("set boot order: %w", err)
	}

	ciArgs := []string{"set", vmid, "--ciuser", b.cfg.CIUser, "--ipconfig0", "ip=dhcp"}
	if b.cfg.SSHKeyFile != "" {
		ciArgs = append(ciArgs, "--sshkeys", b.cfg.SSHKeyFile)
	}
	if err := b.runner.Run("qm", ciArgs...); err != nil {
		return fmt.Errorf("set cloud-init defaults: %w", err)
	}

	b.log.Info("converting VM to template", "vmid", vmid)
	if err := b.runner.Run("qm", "template", vmid); err != nil {
		return fmt.Errorf("convert to template: %w", err)
	}

	b.log.Info("template ready", "vmid", vmid, "name", b.cfg.Name)
	return nil
}
