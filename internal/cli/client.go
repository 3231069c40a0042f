// Package cli — client.go wires the configuration file to a gateway
// client. Every command that talks to the gateway goes through
// newGatewayClient so logging and configuration lookup behave the same
// everywhere.
package cli

import (
	"fmt"

	"github.com/anjos/lighter/internal/config"
	"github.com/anjos/lighter/internal/deconz"
	"github.com/anjos/lighter/internal/model"
)

// newGatewayClient loads the .lighter.json configuration and builds a
// gateway client from it. Debug output follows the --verbose flag;
// warnings always reach stderr.
//
// An api_key is required here: every command goes through this helper
// except "config apikey", which builds its own keyless client.
func newGatewayClient() (*deconz.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, model.NewCLIError(model.ExitNotAuthorized,
			fmt.Sprintf("configuration carries no api_key; acquire one with 'lighter config apikey' and add it to %s", config.FileName))
	}
	VerboseLog("Using gateway %s:%d", cfg.Host, cfg.Port)

	return deconz.New(deconz.Options{
		Host:           cfg.Host,
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TransitionTime: cfg.TransitionTime,
		Debugf:         VerboseLog,
		Warnf:          WarnLog,
	}), nil
}
