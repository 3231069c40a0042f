package release

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/anjos/lighter/internal/model"
)

// FileName is the release descriptor looked up at the project root.
const FileName = ".lighter-release.yaml"

// DefaultMountPoint is where the project root is mounted during
// containerized builds. The path inside the container is fixed so the
// build tool sees the same layout on every host.
const DefaultMountPoint = "/work"

// defaultDescriptor is the per-package build descriptor the external
// build tool consumes.
const defaultDescriptor = "build.yaml"

// versionPattern recognizes the toolchain version strings the build
// tool accepts: two or three dot-separated numeric components.
var versionPattern = regexp.MustCompile(`^[0-9]+\.[0-9]+(\.[0-9]+)?$`)

// BuildSpec describes how the external build tool is invoked.
type BuildSpec struct {
	// Command is the build command and its fixed leading arguments.
	// The package path is appended per invocation.
	Command []string `yaml:"command"`

	// VersionFlag is appended with a version string when building a
	// versioned package, e.g. "--toolchain".
	VersionFlag string `yaml:"version_flag"`

	// Descriptor is the file each package directory must carry for the
	// build tool to consume. Defaults to "build.yaml".
	Descriptor string `yaml:"descriptor"`
}

// ContainerSpec describes the containerized variant of each build.
type ContainerSpec struct {
	// Image is the builder image run for containerized builds.
	Image string `yaml:"image"`

	// MountPoint is the in-container path the project root is mounted
	// at. Defaults to DefaultMountPoint.
	MountPoint string `yaml:"mount_point"`
}

// Config is the release descriptor: which packages to build, against
// which toolchain versions, with which commands, and which CLI entry
// points the release installs.
type Config struct {
	// Package is the release name.
	Package string `yaml:"package"`

	// Version is the release version string. Exactly one of Version
	// and VersionFile must be set; VersionFile points at a file whose
	// trimmed content is the version.
	Version     string `yaml:"version"`
	VersionFile string `yaml:"version_file"`

	// EntryPoints maps an installed command name to the directory its
	// main package lives in, e.g. "lighter" -> "cmd/lighter".
	EntryPoints map[string]string `yaml:"entry_points"`

	// Packages are built once each, in declaration order.
	Packages []string `yaml:"packages"`

	// VersionedPackages are built once per entry in Versions, in
	// declaration order, versions outermost.
	VersionedPackages []string `yaml:"versioned_packages"`

	// Versions are the toolchain versions VersionedPackages build
	// against.
	Versions []string `yaml:"versions"`

	Build     BuildSpec     `yaml:"build"`
	Container ContainerSpec `yaml:"container"`
}

// Load reads and validates the release descriptor from root.
func Load(root string) (*Config, error) {
	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitReleaseError,
			fmt.Sprintf("cannot read release descriptor %s", path), err)
	}
	return Decode(data, root)
}

// Decode parses a release descriptor and validates it against the
// project rooted at root.
func Decode(data []byte, root string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, model.WrapCLIError(model.ExitReleaseError,
			"malformed release descriptor", err)
	}

	if cfg.Build.Descriptor == "" {
		cfg.Build.Descriptor = defaultDescriptor
	}
	if cfg.Container.MountPoint == "" {
		cfg.Container.MountPoint = DefaultMountPoint
	}

	if err := cfg.Validate(root); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the descriptor's consistency against the project
// tree: every declared package directory exists and carries a build
// descriptor, every toolchain version is of a recognized form, and
// every entry point maps to an existing cmd directory named after the
// installed command.
func (c *Config) Validate(root string) error {
	if c.Package == "" {
		return model.NewCLIError(model.ExitReleaseError,
			"release descriptor declares no package name")
	}
	if len(c.Build.Command) == 0 {
		return model.NewCLIError(model.ExitReleaseError,
			"release descriptor declares no build command")
	}
	if (len(c.Packages) > 0 || len(c.VersionedPackages) > 0) && c.Container.Image == "" {
		return model.NewCLIError(model.ExitReleaseError,
			"release descriptor declares no container image for containerized builds")
	}
	if (c.Version == "") == (c.VersionFile == "") {
		return model.NewCLIError(model.ExitReleaseError,
			"release descriptor must set exactly one of version and version_file")
	}
	if len(c.VersionedPackages) > 0 {
		if len(c.Versions) == 0 {
			return model.NewCLIError(model.ExitReleaseError,
				"versioned_packages declared but no versions listed")
		}
		if c.Build.VersionFlag == "" {
			return model.NewCLIError(model.ExitReleaseError,
				"versioned_packages declared but build.version_flag is empty")
		}
	}

	for _, v := range c.Versions {
		if !versionPattern.MatchString(v) {
			return model.NewCLIError(model.ExitReleaseError,
				fmt.Sprintf("unrecognized toolchain version %q", v))
		}
	}

	for _, pkg := range append(append([]string{}, c.Packages...), c.VersionedPackages...) {
		dir := filepath.Join(root, pkg)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return model.NewCLIError(model.ExitReleaseError,
				fmt.Sprintf("package directory %s does not exist", pkg))
		}
		descriptor := filepath.Join(dir, c.Build.Descriptor)
		if _, err := os.Stat(descriptor); err != nil {
			return model.NewCLIError(model.ExitReleaseError,
				fmt.Sprintf("package %s carries no %s", pkg, c.Build.Descriptor))
		}
	}

	for name, dir := range c.EntryPoints {
		if filepath.Base(dir) != name {
			return model.NewCLIError(model.ExitReleaseError,
				fmt.Sprintf("entry point %q does not match its directory %s", name, dir))
		}
		info, err := os.Stat(filepath.Join(root, dir))
		if err != nil || !info.IsDir() {
			return model.NewCLIError(model.ExitReleaseError,
				fmt.Sprintf("entry point %q points at missing directory %s", name, dir))
		}
	}

	return nil
}

// ResolveVersion returns the release version. The resolution is a pure
// function of the descriptor and the version file's content: resolving
// twice against unchanged project metadata yields the same string.
func (c *Config) ResolveVersion(root string) (string, error) {
	if c.Version != "" {
		return c.Version, nil
	}

	data, err := os.ReadFile(filepath.Join(root, c.VersionFile))
	if err != nil {
		return "", model.WrapCLIError(model.ExitReleaseError,
			fmt.Sprintf("cannot read version file %s", c.VersionFile), err)
	}
	version := strings.TrimSpace(string(data))
	if version == "" {
		return "", model.NewCLIError(model.ExitReleaseError,
			fmt.Sprintf("version file %s is empty", c.VersionFile))
	}
	return version, nil
}
