package collector

import (
	"context"
	"fmt"
	"strings"

	"github.com/masterzen/winrm"

	"github.com/rdpstats/rdp-session-stats/config"
)

type winrmTransport struct {
	client *winrm.Client
}

// winrmFactory opens NTLM-authenticated WinRM connections, the transport the
// TerminalServices event log collection expects.
func winrmFactory(cfg *config.Config) TransportFactory {
	return func(server string) (Transport, error) {
		endpoint := winrm.NewEndpoint(server, cfg.WinRMPort, false, true, nil, nil, nil, cfg.WinRMTimeout)
		params := winrm.DefaultParameters
		params.TransportDecorator = func() winrm.Transporter { return &winrm.ClientNTLM{} }
		client, err := winrm.NewClientWithParameters(endpoint, cfg.User(), cfg.Password, params)
		if err != nil {
			return nil, fmt.Errorf("winrm client for %s: %w", server, err)
		}
		return &winrmTransport{client: client}, nil
	}
}

func (t *winrmTransport) RunPS(ctx context.Context, script string) (string, error) {
	stdout, stderr, code, err := t.client.RunPSWithContextWithString(ctx, script, "")
	if err != nil {
		return "", err
	}
	if code != 0 {
		return "", fmt.Errorf("remote command exited %d: %s", code, strings.TrimSpace(stderr))
	}
	return stdout, nil
}
