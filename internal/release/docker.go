package release

import (
	"context"
	"time"

	"github.com/docker/docker/client"

	"github.com/anjos/lighter/internal/model"
)

// pingTimeout bounds the daemon liveness probe ran before the first
// containerized build. 5 seconds is generous enough even for Docker
// Desktop setups.
const pingTimeout = 5 * time.Second

// daemonPinger verifies a container runtime is available. The driver
// depends on this interface so tests can substitute the Docker SDK.
type daemonPinger interface {
	Ping(ctx context.Context) error
	Close() error
}

// dockerPinger implements daemonPinger on the Docker Engine SDK.
type dockerPinger struct {
	inner *client.Client
}

// newDockerPinger connects to the Docker daemon using the environment
// configuration (DOCKER_HOST and friends) with automatic API version
// negotiation, so the probe works across daemon versions.
func newDockerPinger() (daemonPinger, error) {
	c, err := client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitReleaseError,
			"failed to create Docker client", err)
	}
	return &dockerPinger{inner: c}, nil
}

func (p *dockerPinger) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if _, err := p.inner.Ping(pingCtx); err != nil {
		return model.WrapCLIError(model.ExitReleaseError,
			"Docker daemon is not reachable; containerized builds need a running daemon", err)
	}
	return nil
}

func (p *dockerPinger) Close() error {
	return p.inner.Close()
}
