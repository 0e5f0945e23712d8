package fail2ban

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/pvegate/internal/command"
	"grimm.is/pvegate/internal/config"
)

func testProvisioner(t *testing.T) (*Provisioner, *command.MockRunner) {
	t.Helper()
	runner := &command.MockRunner{}
	p := NewProvisioner(&config.Fail2banConfig{
		BanTime:  "1h",
		FindTime: "10m",
		MaxRetry: 5,
		IgnoreIP: "127.0.0.1/8",
	}, runner)
	p.etcDir = t.TempDir()
	return p, runner
}

func TestConfigureWritesJailAndFilter(t *testing.T) {
	p, runner := testProvisioner(t)
	runner.On("Run", "systemctl", "enable", "--now", "fail2ban").Return(nil)
	runner.On("Run", "fail2ban-client", "reload").Return(nil)

	require.NoError(t, p.Configure())
	runner.AssertExpectations(t)

	jail, err := os.ReadFile(p.JailLocalPath())
	require.NoError(t, err)
	assert.Contains(t, string(jail), "bantime  = 1h")
	assert.Contains(t, string(jail), "findtime = 10m")
	assert.Contains(t, string(jail), "maxretry = 5")
	assert.Contains(t, string(jail), "[sshd]")
	assert.Contains(t, string(jail), "[proxmox]")
	assert.Contains(t, string(jail), "port     = https,http,8006")

	filter, err := os.ReadFile(p.FilterPath())
	require.NoError(t, err)
	assert.Contains(t, string(filter), "pvedaemon")
	assert.Contains(t, string(filter), "<HOST>")
}

func TestConfigureBacksUpExistingJail(t *testing.T) {
	p, runner := testProvisioner(t)
	runner.On("Run", "systemctl", "enable", "--now", "fail2ban").Return(nil)
	runner.On("Run", "fail2ban-client", "reload").Return(nil)

	require.NoError(t, os.WriteFile(p.JailLocalPath(), []byte("# operator edits\n"), 0644))

	require.NoError(t, p.Configure())

	bak, err := os.ReadFile(p.JailLocalPath() + ".bak")
	require.NoError(t, err)
	assert.Equal(t, "# operator edits\n", string(bak))
}

func TestConfigureServiceFailure(t *testing.T) {
	p, runner := testProvisioner(t)
	runner.On("Run", "systemctl", "enable", "--now", "fail2ban").Return(errors.New("unit not found"))

	err := p.Configure()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enable fail2ban service")
	// Config files were written before the service step failed.
	_, statErr := os.Stat(p.JailLocalPath())
	assert.NoError(t, statErr)
}

func TestStatusConcatenatesJails(t *testing.T) {
	p, runner := testProvisioner(t)
	runner.On("Output", "fail2ban-client", "status", "sshd").Return([]byte("Status for the jail: sshd\n"), nil)
	runner.On("Output", "fail2ban-client", "status", "proxmox").Return([]byte("Status for the jail: proxmox\n"), nil)

	out, err := p.Status()
	require.NoError(t, err)
	assert.Contains(t, out, "sshd")
	assert.Contains(t, out, "proxmox")
}

func TestStatusJailFailure(t *testing.T) {
	p, runner := testProvisioner(t)
	runner.On("Output", "fail2ban-client", "status", "sshd").Return(nil, errors.New("no such jail"))

	_, err := p.Status()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sshd")
}
