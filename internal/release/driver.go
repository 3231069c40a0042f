package release

import (
	"context"
	"fmt"
	"os/exec"
	"path"
	"strings"

	"github.com/anjos/lighter/internal/model"
)

// commandRunner executes one external command and returns its combined
// output. Tests substitute it to capture invocations.
type commandRunner func(ctx context.Context, dir string, name string, args ...string) ([]byte, error)

// execRunner is the production runner, backed by os/exec.
func execRunner(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Driver runs the build matrix a release descriptor declares. Builds
// are strictly sequential: each simple package is built natively and
// then in a container, then each (version, versioned package) pair the
// same way, version outermost. The first failing invocation aborts the
// whole run.
type Driver struct {
	cfg  *Config
	root string

	run    commandRunner
	pinger daemonPinger
	debugf func(format string, args ...any)

	pinged bool
}

// DriverOptions configures a Driver. Zero values select the production
// behavior.
type DriverOptions struct {
	// Runner replaces the external command executor.
	Runner commandRunner

	// Pinger replaces the Docker daemon probe.
	Pinger daemonPinger

	// Debugf receives progress lines. Discarded when nil.
	Debugf func(format string, args ...any)
}

// NewDriver builds a Driver for the descriptor cfg of the project at
// root.
func NewDriver(cfg *Config, root string, opts DriverOptions) *Driver {
	d := &Driver{
		cfg:    cfg,
		root:   root,
		run:    opts.Runner,
		pinger: opts.Pinger,
		debugf: opts.Debugf,
	}
	if d.run == nil {
		d.run = execRunner
	}
	if d.debugf == nil {
		d.debugf = func(string, ...any) {}
	}
	return d
}

// Run executes the full build matrix and returns the number of build
// invocations performed.
func (d *Driver) Run(ctx context.Context) (int, error) {
	version, err := d.cfg.ResolveVersion(d.root)
	if err != nil {
		return 0, err
	}
	d.debugf("releasing %s %s", d.cfg.Package, version)

	defer func() {
		if d.pinged && d.pinger != nil {
			_ = d.pinger.Close()
		}
	}()

	var done int
	for _, pkg := range d.cfg.Packages {
		if err := d.buildPair(ctx, pkg, "", &done); err != nil {
			return done, err
		}
	}
	for _, toolchain := range d.cfg.Versions {
		for _, pkg := range d.cfg.VersionedPackages {
			if err := d.buildPair(ctx, pkg, toolchain, &done); err != nil {
				return done, err
			}
		}
	}

	d.debugf("release complete: %d build invocations", done)
	return done, nil
}

// buildPair runs the native build for one package, then its
// containerized variant.
func (d *Driver) buildPair(ctx context.Context, pkg, toolchain string, done *int) error {
	if err := d.buildNative(ctx, pkg, toolchain); err != nil {
		return err
	}
	*done++

	if err := d.buildContainerized(ctx, pkg, toolchain); err != nil {
		return err
	}
	*done++
	return nil
}

func (d *Driver) buildNative(ctx context.Context, pkg, toolchain string) error {
	args := append([]string{}, d.cfg.Build.Command[1:]...)
	args = append(args, pkg)
	args = d.appendVersion(args, toolchain)

	d.debugf("building %s%s", pkg, forToolchain(toolchain))
	return d.invoke(ctx, pkg, d.cfg.Build.Command[0], args)
}

// buildContainerized runs the same build inside the configured image,
// with the project root mounted at the fixed mount point and the
// package path rewritten to live under it.
func (d *Driver) buildContainerized(ctx context.Context, pkg, toolchain string) error {
	if err := d.ensureDaemon(ctx); err != nil {
		return err
	}

	args := []string{
		"run", "--rm",
		"-v", d.root + ":" + d.cfg.Container.MountPoint,
		"-w", d.cfg.Container.MountPoint,
		d.cfg.Container.Image,
	}
	args = append(args, d.cfg.Build.Command...)
	args = append(args, path.Join(d.cfg.Container.MountPoint, pkg))
	args = d.appendVersion(args, toolchain)

	d.debugf("building %s%s in container %s", pkg, forToolchain(toolchain), d.cfg.Container.Image)
	return d.invoke(ctx, pkg, "docker", args)
}

// ensureDaemon probes the Docker daemon once per run, before the first
// containerized build.
func (d *Driver) ensureDaemon(ctx context.Context) error {
	if d.pinged {
		return nil
	}
	if d.pinger == nil {
		p, err := newDockerPinger()
		if err != nil {
			return err
		}
		d.pinger = p
	}
	if err := d.pinger.Ping(ctx); err != nil {
		return err
	}
	d.pinged = true
	return nil
}

func (d *Driver) appendVersion(args []string, toolchain string) []string {
	if toolchain != "" {
		args = append(args, d.cfg.Build.VersionFlag, toolchain)
	}
	return args
}

func (d *Driver) invoke(ctx context.Context, pkg, name string, args []string) error {
	output, err := d.run(ctx, d.root, name, args...)
	if err != nil {
		return model.WrapCLIError(model.ExitReleaseError,
			fmt.Sprintf("build of %s failed: %s", pkg, strings.TrimSpace(string(output))), err)
	}
	return nil
}

func forToolchain(toolchain string) string {
	if toolchain == "" {
		return ""
	}
	return " for toolchain " + toolchain
}
