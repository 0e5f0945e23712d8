package template

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"grimm.is/pvegate/internal/command"
	"grimm.is/pvegate/internal/config"
)

func testConfig(t *testing.T) *config.TemplateConfig {
	t.Helper()
	return &config.TemplateConfig{
		VMID:     9000,
		Name:     "debian-cloudinit",
		Storage:  "local-lvm",
		ImageURL: "https://cloud.debian.org/images/cloud/bookworm/latest/debian-12-generic-amd64.qcow2",
		ImageDir: t.TempDir(),
		Cores:    2,
		MemoryMB: 2048,
		Bridge:   "vmbr1",
		CIUser:   "debian",
	}
}

func cacheImage(t *testing.T, b *Builder) {
	t.Helper()
	require.NoError(t, os.WriteFile(b.ImagePath(), []byte("qcow2"), 0644))
}

func TestBuildRunsFullFlow(t *testing.T) {
	cfg := testConfig(t)
	runner := &command.MockRunner{}
	b := NewBuilder(cfg, runner)
	cacheImage(t, b)

	img := b.ImagePath()
	runner.On("Output", "qm", "status", "9000").Return(nil, errors.New("does not exist"))
	runner.On("Run", "virt-customize", "-a", img,
		"--install", "qemu-guest-agent",
		"--run-command", "systemctl enable qemu-guest-agent").Return(nil)
	runner.On("Run", "qm", "create", "9000",
		"--name", "debian-cloudinit",
		"--ostype", "l26",
		"--memory", "2048",
		"--cores", "2",
		"--net0", "virtio,bridge=vmbr1",
		"--serial0", "socket",
		"--vga", "serial0",
		"--agent", "enabled=1").Return(nil)
	runner.On("Run", "qm", "importdisk", "9000", img, "local-lvm").Return(nil)
	runner.On("Run", "qm", "set", "9000",
		"--scsihw", "virtio-scsi-pci",
		"--scsi0", "local-lvm:vm-9000-disk-0").Return(nil)
	runner.On("Run", "qm", "set", "9000", "--ide2", "local-lvm:cloudinit").Return(nil)
	runner.On("Run", "qm", "set", "9000", "--boot", "order=scsi0").Return(nil)
	runner.On("Run", "qm", "set", "9000", "--ciuser", "debian", "--ipconfig0", "ip=dhcp").Return(nil)
	runner.On("Run", "qm", "template", "9000").Return(nil)

	require.NoError(t, b.Build())
	runner.AssertExpectations(t)
	// Image was cached, so no download happened.
	runner.AssertNotCalled(t, "Run", "wget", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBuildDownloadsWhenImageMissing(t *testing.T) {
	cfg := testConfig(t)
	runner := &command.MockRunner{}
	b := NewBuilder(cfg, runner)
	img := b.ImagePath()

	runner.On("Output", "qm", "status", "9000").Return(nil, errors.New("does not exist"))
	runner.On("Run", "wget", "-q", "-O", img, cfg.ImageURL).Return(errors.New("network down"))

	err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "download cloud image")
	runner.AssertExpectations(t)
}

func TestBuildRefusesExistingVMID(t *testing.T) {
	cfg := testConfig(t)
	runner := &command.MockRunner{}
	b := NewBuilder(cfg, runner)
	cacheImage(t, b)

	runner.On("Output", "qm", "status", "9000").Return([]byte("status: stopped"), nil)

	err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
}

func TestBuildAbortsOnFirstFailure(t *testing.T) {
	cfg := testConfig(t)
	runner := &command.MockRunner{}
	b := NewBuilder(cfg, runner)
	cacheImage(t, b)
	img := b.ImagePath()

	runner.On("Output", "qm", "status", "9000").Return(nil, errors.New("does not exist"))
	runner.On("Run", "virt-customize", "-a", img,
		"--install", "qemu-guest-agent",
		"--run-command", "systemctl enable qemu-guest-agent").Return(nil)
	runner.On("Run", "qm", "create", "9000",
		"--name", "debian-cloudinit",
		"--ostype", "l26",
		"--memory", "2048",
		"--cores", "2",
		"--net0", "virtio,bridge=vmbr1",
		"--serial0", "socket",
		"--vga", "serial0",
		"--agent", "enabled=1").Return(errors.New("storage full"))

	err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create VM")
	// Nothing past the failing step ran.
	runner.AssertNotCalled(t, "Run", "qm", "importdisk", "9000", img, "local-lvm")
}

func TestBuildIncludesSSHKeysWhenConfigured(t *testing.T) {
	cfg := testConfig(t)
	cfg.SSHKeyFile = filepath.Join(t.TempDir(), "authorized_keys")
	runner := &command.MockRunner{}
	b := NewBuilder(cfg, runner)
	cacheImage(t, b)
	img := b.ImagePath()

	runner.On("Output", "qm", "status", "9000").Return(nil, errors.New("does not exist"))
	runner.On("Run", "virt-customize", "-a", img,
		"--install", "qemu-guest-agent",
		"--run-command", "systemctl enable qemu-guest-agent").Return(nil)
	runner.On("Run", "qm", "create", "9000",
		"--name", "debian-cloudinit",
		"--ostype", "l26",
		"--memory", "2048",
		"--cores", "2",
		"--net0", "virtio,bridge=vmbr1",
		"--serial0", "socket",
		"--vga", "serial0",
		"--agent", "enabled=1").Return(nil)
	runner.On("Run", "qm", "importdisk", "9000", img, "local-lvm").Return(nil)
	runner.On("Run", "qm", "set", "9000",
		"--scsihw", "virtio-scsi-pci",
		"--scsi0", "local-lvm:vm-9000-disk-0").Return(nil)
	runner.On("Run", "qm", "set", "9000", "--ide2", "local-lvm:cloudinit").Return(nil)
	runner.On("Run", "qm", "set", "9000", "--boot", "order=scsi0").Return(nil)
	runner.On("Run", "qm", "set", "9000",
		"--ciuser", "debian",
		"--ipconfig0", "ip=dhcp",
		"--sshkeys", cfg.SSHKeyFile).Return(nil)
	runner.On("Run", "qm", "template", "9000").Return(nil)

	require.NoError(t, b.Build())
}
