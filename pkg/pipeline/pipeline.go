package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/slipway-sh/slipway/pkg/buildfile"
	"github.com/slipway-sh/slipway/pkg/container"
	"github.com/slipway-sh/slipway/pkg/defers"
	"github.com/slipway-sh/slipway/pkg/logger"
	"github.com/slipway-sh/slipway/pkg/manifest"
	"github.com/slipway-sh/slipway/pkg/recipe"
	"github.com/slipway-sh/slipway/pkg/utils"
)

// Labels recorded on every built image. The manifest digest is the declared
// cache key of the install stage, the expose port mirrors the recipe's
// declared network surface.
const (
	LabelBuildId        = "sh.slipway.build-id"
	LabelManifestDigest = "sh.slipway.manifest-digest"
	LabelExposePort     = "sh.slipway.expose-port"
)

// Result describes a completed build.
type Result struct {
	BuildId        string
	Tag            string
	ManifestDigest string
	Requirements   int
}

// Pipeline executes the ordered build contract: resolve the base image,
// establish a staging directory, place the dependency manifest, render the
// build file, copy the source tree and build the image. Stages run strictly
// sequentially and any failure aborts the build, leaving no partial state
// behind.
type Pipeline struct {
	log     logger.Logger
	engine  container.ImageService
	recipe  *recipe.Recipe
	source  string
	tag     string
	buildId string

	stagingDir string
	man        *manifest.Manifest
}

type stage struct {
	name string
	run  func(ctx context.Context, cleanup defers.Defers) error
}

// New returns a Pipeline building the given source tree into an image with
// the given tag.
func New(log logger.Logger, engine container.ImageService, rcp *recipe.Recipe, sourceDir string, tag string) *Pipeline {
	buildId := uuid.NewString()
	return &Pipeline{
		log:     log.WithFields(map[string]any{"build-id": buildId, "image-tag": tag}),
		engine:  engine,
		recipe:  rcp,
		source:  sourceDir,
		tag:     tag,
		buildId: buildId,
	}
}

func (p *Pipeline) stages() []stage {
	return []stage{
		{name: "resolve-base-image", run: p.resolveBaseImage},
		{name: "establish-staging-dir", run: p.establishStagingDir},
		{name: "place-manifest", run: p.placeManifest},
		{name: "render-buildfile", run: p.renderBuildfile},
		{name: "copy-source-tree", run: p.copySourceTree},
		{name: "build-image", run: p.buildImage},
	}
}

// Run executes all build stages in order and returns the build result.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	cleanup := defers.NewDefers()
	defer cleanup.CallAll()

	for _, s := range p.stages() {
		p.log.Debugf("running build stage: %s", s.name)
		if err := s.run(ctx, cleanup); err != nil {
			p.log.Errorf("build stage %s failed: %v", s.name, err)
			return nil, err
		}
	}

	return &Result{
		BuildId:        p.buildId,
		Tag:            p.tag,
		ManifestDigest: p.man.Digest(),
		Requirements:   p.man.Len(),
	}, nil
}

func (p *Pipeline) resolveBaseImage(ctx context.Context, _ defers.Defers) error {
	if err := p.engine.PullImage(ctx, p.recipe.BaseImage); err != nil {
		return &UnresolvedBaseImageError{Ref: p.recipe.BaseImage, Err: err}
	}
	return nil
}

func (p *Pipeline) establishStagingDir(_ context.Context, cleanup defers.Defers) error {
	tempRoot := os.TempDir()
	if exists, stat := utils.FileExists(tempRoot); exists {
		if ok, err := utils.IsDirAndWritable(tempRoot, stat); !ok {
			return fmt.Errorf("staging root unusable: %w", err)
		}
	}

	stagingDir, err := os.MkdirTemp("", "slipway-build-*")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	cleanup.Add(func() {
		if err := os.RemoveAll(stagingDir); err != nil {
			p.log.Warnf("failed to remove staging directory: %v", err)
		}
	})
	p.stagingDir = stagingDir
	return nil
}

// placeManifest copies the dependency manifest only, ahead of the full
// source tree, and parses it into the install cache key.
func (p *Pipeline) placeManifest(_ context.Context, _ defers.Defers) error {
	manifestPath := filepath.Join(p.source, p.recipe.ManifestFile)
	if exists, _ := utils.FileExists(manifestPath); !exists {
		return &DependencyResolutionError{
			Manifest: p.recipe.ManifestFile,
			Err:      fmt.Errorf("manifest not found in source tree: %s", manifestPath),
		}
	}

	man, err := manifest.ParseFile(manifestPath)
	if err != nil {
		return &DependencyResolutionError{Manifest: p.recipe.ManifestFile, Err: err}
	}
	p.man = man
	p.log.Debugf("manifest declares %d requirements, digest: %s", man.Len(), man.Digest())

	if err := utils.CopyFile(manifestPath, filepath.Join(p.stagingDir, p.recipe.ManifestFile)); err != nil {
		return fmt.Errorf("failed to place manifest: %w", err)
	}
	return nil
}

func (p *Pipeline) renderBuildfile(_ context.Context, _ defers.Defers) error {
	if _, err := buildfile.WriteFile(p.stagingDir, p.recipe); err != nil {
		return err
	}
	return nil
}

// copySourceTree copies the entire application source tree into the staging
// directory. The manifest placed earlier is recopied idempotently.
func (p *Pipeline) copySourceTree(_ context.Context, _ defers.Defers) error {
	if err := utils.CopyDir(p.source, p.stagingDir); err != nil {
		return fmt.Errorf("failed to copy source tree: %w", err)
	}
	return nil
}

func (p *Pipeline) buildImage(ctx context.Context, _ defers.Defers) error {
	labels := map[string]string{
		LabelBuildId:        p.buildId,
		LabelManifestDigest: p.man.Digest(),
		LabelExposePort:     strconv.Itoa(p.recipe.ExposePort),
	}
	if err := p.engine.BuildImage(ctx, p.stagingDir, buildfile.FileName, p.tag, labels); err != nil {
		return &DependencyResolutionError{Manifest: p.recipe.ManifestFile, Err: err}
	}
	return nil
}

// UpToDate reports whether an image with the given tag exists and its
// recorded manifest digest matches the manifest currently in the source
// tree. A matching digest means the install stage would be a cache hit.
func UpToDate(ctx context.Context, engine container.ImageService, rcp *recipe.Recipe, sourceDir string, tag string) (bool, error) {
	labels, exists, err := engine.InspectImageLabels(ctx, tag)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	man, err := manifest.ParseFile(filepath.Join(sourceDir, rcp.ManifestFile))
	if err != nil {
		return false, &DependencyResolutionError{Manifest: rcp.ManifestFile, Err: err}
	}

	return labels[LabelManifestDigest] == man.Digest(), nil
}
