package recipe

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFileName is the recipe file slipway looks for in the source tree.
	DefaultFileName = "slipway.yaml"

	// EnvNoBytecodeCache disables writing compiled-artifact caches to disk.
	EnvNoBytecodeCache = "PYTHONDONTWRITEBYTECODE"

	// EnvUnbufferedOutput disables buffering of the process's standard
	// output/error streams so logs appear immediately.
	EnvUnbufferedOutput = "PYTHONUNBUFFERED"

	defaultBaseImage    = "python:3.11-slim"
	defaultWorkDir      = "/app"
	defaultManifestFile = "requirements.txt"
	defaultExposePort   = 5000

	defaultWorkerCount      = 2
	defaultThreadsPerWorker = 2
)

// Command is the launch command of the image: the single process and
// arguments started as the container's main process.
type Command struct {
	Program string   `yaml:"program" validate:"required"`
	Args    []string `yaml:"args"`
}

// Argv returns the full argument vector of the command.
func (c Command) Argv() []string {
	return append([]string{c.Program}, c.Args...)
}

func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}

// Recipe is the declarative input of the build pipeline. It is fixed at
// build time and immutable thereafter.
type Recipe struct {
	// BaseImage is the base runtime reference the image is built on.
	BaseImage string `yaml:"baseImage" validate:"required"`

	// Env holds the build environment variables. They apply for the
	// remainder of the build and are inherited by the running process.
	Env map[string]string `yaml:"env"`

	// WorkDir is the working directory used by all build steps and as the
	// process's default directory at runtime.
	WorkDir string `yaml:"workDir" validate:"required,startswith=/"`

	// ManifestFile is the dependency manifest path relative to the source tree.
	ManifestFile string `yaml:"manifestFile" validate:"required"`

	// ExposePort is the documented port the launched process listens on.
	ExposePort int `yaml:"exposePort" validate:"required,gt=0,lte=65535"`

	// Launch is the image's default entry process.
	Launch Command `yaml:"launch"`
}

// Default returns the recipe matching the stock packaging contract: a slim
// Python base, an /app working directory, a requirements.txt manifest and a
// gunicorn launch bound to 0.0.0.0:5000 with 2 workers of 2 threads each.
func Default() Recipe {
	return Recipe{
		BaseImage:    defaultBaseImage,
		Env:          map[string]string{},
		WorkDir:      defaultWorkDir,
		ManifestFile: defaultManifestFile,
		ExposePort:   defaultExposePort,
		Launch: Command{
			Program: "gunicorn",
			Args: []string{
				"-b", fmt.Sprintf("0.0.0.0:%d", defaultExposePort),
				"app:app",
				fmt.Sprintf("--workers=%d", defaultWorkerCount),
				fmt.Sprintf("--threads=%d", defaultThreadsPerWorker),
			},
		},
	}
}

// Load reads a recipe file and merges it over the defaults. Fields absent
// from the file keep their default values.
func Load(path string) (*Recipe, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe file: %w", err)
	}

	loaded := Default()
	if err := yaml.Unmarshal(content, &loaded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe file: %w", err)
	}
	if err := loaded.Validate(); err != nil {
		return nil, err
	}

	return &loaded, nil
}

// Resolve returns the effective recipe: the explicitly given file when set,
// otherwise the recipe file found in the source tree, otherwise the defaults.
func Resolve(explicitPath string, sourceDir string) (*Recipe, error) {
	if explicitPath != "" {
		return Load(explicitPath)
	}

	sourceRecipe := filepath.Join(sourceDir, DefaultFileName)
	if _, err := os.Stat(sourceRecipe); err == nil {
		return Load(sourceRecipe)
	}

	defaults := Default()
	return &defaults, nil
}

// Validate checks the recipe invariants.
func (r *Recipe) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid recipe: %w", err)
	}
	return nil
}

// BuildEnv returns the effective environment variables of the build. The
// bytecode-cache and output-buffering guarantees are applied last so
// user-supplied values cannot displace them.
func (r *Recipe) BuildEnv() map[string]string {
	env := make(map[string]string, len(r.Env)+2)
	for key, value := range r.Env {
		env[key] = value
	}
	env[EnvNoBytecodeCache] = "1"
	env[EnvUnbufferedOutput] = "1"
	return env
}

// EnvSlice returns the effective environment as sorted KEY=VALUE pairs.
func (r *Recipe) EnvSlice() []string {
	env := r.BuildEnv()
	keys := make([]string, 0, len(env))
	for key := range env {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", key, env[key]))
	}
	return pairs
}
