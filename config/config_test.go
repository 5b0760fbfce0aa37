package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("RDP_LOG_USERNAME", "svc-rdplog")
	t.Setenv("RDP_LOG_PASSWORD", "secret")
	t.Setenv("RDP_SERVERS", "server1,server2")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("RDP_LOG_DOMAIN", "")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("WINRM_PORT", "")
	t.Setenv("WINRM_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"server1", "server2"}, cfg.Servers)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 5985, cfg.WinRMPort)
	assert.Equal(t, 60*time.Second, cfg.WinRMTimeout)
	assert.Equal(t, "svc-rdplog", cfg.User())
}

func TestLoadRequiresCredentials(t *testing.T) {
	t.Setenv("RDP_LOG_USERNAME", "")
	t.Setenv("RDP_LOG_PASSWORD", "")
	t.Setenv("RDP_SERVERS", "server1")

	_, err := Load()
	assert.ErrorContains(t, err, "RDP_LOG_USERNAME")
}

func TestLoadRequiresServers(t *testing.T) {
	t.Setenv("RDP_LOG_USERNAME", "svc-rdplog")
	t.Setenv("RDP_LOG_PASSWORD", "secret")
	t.Setenv("RDP_SERVERS", " , ")

	_, err := Load()
	assert.ErrorContains(t, err, "RDP_SERVERS")
}

func TestLoadTrimsServerList(t *testing.T) {
	setRequired(t)
	t.Setenv("RDP_SERVERS", " server1 , server2 ,, server3 ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"server1", "server2", "server3"}, cfg.Servers)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("WINRM_PORT", "5986")
	t.Setenv("WINRM_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, 5986, cfg.WinRMPort)
	assert.Equal(t, 30*time.Second, cfg.WinRMTimeout)
}

func TestLoadRejectsBadPort(t *testing.T) {
	setRequired(t)
	t.Setenv("WINRM_PORT", "https")

	_, err := Load()
	assert.ErrorContains(t, err, "WINRM_PORT")
}

func TestUserWithDomain(t *testing.T) {
	cfg := &Config{Username: "svc-rdplog", Domain: "CORP"}
	assert.Equal(t, `CORP\svc-rdplog`, cfg.User())
}
