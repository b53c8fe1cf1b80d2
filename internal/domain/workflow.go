// Package domain holds the planning and install orchestration for gext.
package domain

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"gext.dev/pkg/gext/internal/adapter"
	"gext.dev/pkg/gext/internal/controller"
	m "gext.dev/pkg/gext/internal/model"
	"gext.dev/pkg/gext/pkg"
)

// TreeFSFactory produces the two-tree resolver for one bundle. Injected so
// tests can plan against in-memory trees.
type TreeFSFactory func(sourceDir, buildDir m.Path) adapter.TreeFS

// PlanArgs holds the inputs for planning a single bundle.
type PlanArgs struct {
	Bundle      m.Bundle
	InstallRoot m.Path
}

// InstallArgs holds the inputs for installing one or more bundles.
type InstallArgs struct {
	Bundles     []m.Bundle
	InstallRoot m.Path
	Parallel    int
	DryRun      bool
}

// UninstallArgs holds the inputs for removing an installed bundle.
type UninstallArgs struct {
	UUID        string
	InstallRoot m.Path
}

// Workflow ties resolution, scanning, classification and installation
// together.
type Workflow interface {
	// Plan resolves a bundle's complete file set without touching the
	// install root.
	Plan(ctx context.Context, args PlanArgs) (*m.InstallPlan, error)

	// Install plans and installs every bundle. Bundles run as independent
	// pipelines with no shared state, so they may proceed concurrently.
	Install(ctx context.Context, args InstallArgs) error

	// Uninstall removes a previously installed bundle via its manifest.
	Uninstall(ctx context.Context, args UninstallArgs) error
}

type workflow struct {
	trees     TreeFSFactory
	installer adapter.Installer
	compiler  adapter.SchemaCompiler
	manifests adapter.ManifestStore
	ui        controller.UI
}

// NewWorkflow creates a Workflow instance with the provided dependencies.
func NewWorkflow(
	trees TreeFSFactory,
	installer adapter.Installer,
	compiler adapter.SchemaCompiler,
	manifests adapter.ManifestStore,
	ui controller.UI,
) Workflow {
	return &workflow{
		trees:     trees,
		installer: installer,
		compiler:  compiler,
		manifests: manifests,
		ui:        ui,
	}
}

// Plan implements Workflow.
func (w *workflow) Plan(ctx context.Context, args PlanArgs) (*m.InstallPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bundle := args.Bundle
	tree := w.trees(bundle.Dir, bundle.BuildDir)

	data, err := tree.ReadFile(m.MetadataFile)
	if err != nil {
		return nil, fmt.Errorf("bundle %s: %w", bundle.Dir, err)
	}

	md, err := m.ParseMetadata(data)
	if err != nil {
		return nil, fmt.Errorf("bundle %s: %w", bundle.Dir, err)
	}

	// An explicitly declared uuid wins over metadata's.
	uuid := bundle.UUID
	if uuid == "" {
		uuid = md.UUID
	}

	if uuid == "" {
		return nil, fmt.Errorf("bundle %s: %w", bundle.Dir, ErrMissingUUID)
	}

	if !tree.InSource(m.EntryFile) && !tree.InBuild(m.EntryFile) {
		return nil, fmt.Errorf("bundle %s: %s: %w", bundle.Dir, m.EntryFile, ErrMissingEntry)
	}

	roots := []m.Path{m.MetadataFile, m.EntryFile}
	if tree.InSource(m.PrefsFile) || tree.InBuild(m.PrefsFile) {
		roots = append(roots, m.PrefsFile)
	}

	for _, src := range bundle.Sources {
		roots = append(roots, src.Clean())
	}

	scanner, err := NewScanner(tree, bundle.IncludePattern, roots)
	if err != nil {
		return nil, fmt.Errorf("bundle %s: %w", bundle.Dir, err)
	}

	found, err := scanner.Drain()
	if err != nil {
		return nil, fmt.Errorf("bundle %s: %w", bundle.Dir, err)
	}

	files, err := classify(tree, found)
	if err != nil {
		return nil, fmt.Errorf("bundle %s: %w", bundle.Dir, err)
	}

	schemas := schemaSet(md, bundle.Schemas)

	plan := &m.InstallPlan{
		UUID:    uuid,
		Dest:    args.InstallRoot.Join(uuid),
		Files:   files,
		Schemas: schemas,
	}

	slog.Debug("planned bundle", "uuid", uuid, "files", len(files), "schemas", len(schemas))

	return plan, nil
}

// Install implements Workflow.
func (w *workflow) Install(ctx context.Context, args InstallArgs) error {
	group, ctx := errgroup.WithContext(ctx)
	if args.Parallel > 0 {
		group.SetLimit(args.Parallel)
	}

	for _, bundle := range args.Bundles {
		group.Go(func() error {
			return w.installOne(ctx, bundle, args)
		})
	}

	return group.Wait()
}

func (w *workflow) installOne(ctx context.Context, bundle m.Bundle, args InstallArgs) error {
	plan, err := w.Plan(ctx, PlanArgs{Bundle: bundle, InstallRoot: args.InstallRoot})
	if err != nil {
		return err
	}

	w.ui.DisplayPlan(plan)

	if args.DryRun {
		return nil
	}

	tree := w.trees(bundle.Dir, bundle.BuildDir)

	if err := w.installer.Install(tree, plan.Files, plan.Dest); err != nil {
		return fmt.Errorf("bundle %s: %w", bundle.Dir, err)
	}

	if err := w.compiler.Compile(ctx, tree, plan.Schemas, plan.Dest); err != nil {
		return fmt.Errorf("bundle %s: %w", bundle.Dir, err)
	}

	manifest := m.Manifest{
		UUID:        plan.UUID,
		InstalledAt: time.Now().UTC(),
		Files:       plannedPaths(plan.Files),
		Schemas:     plan.Schemas,
	}

	if err := w.manifests.Save(plan.Dest, manifest); err != nil {
		return fmt.Errorf("bundle %s: %w", bundle.Dir, err)
	}

	w.ui.DisplayInstalled(plan)
	slog.Info("installed extension", "uuid", plan.UUID, "dest", plan.Dest)

	return nil
}

// Uninstall implements Workflow.
func (w *workflow) Uninstall(ctx context.Context, args UninstallArgs) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dest := args.InstallRoot.Join(args.UUID)

	manifest, err := w.manifests.Load(dest)
	if err != nil {
		return fmt.Errorf("uninstall %s: %w", args.UUID, err)
	}

	if err := w.installer.Remove(dest); err != nil {
		return fmt.Errorf("uninstall %s: %w", args.UUID, err)
	}

	w.ui.DisplayRemoved(manifest.UUID, dest)
	slog.Info("removed extension", "uuid", manifest.UUID, "dest", dest)

	return nil
}

// classify partitions the resolved set by provenance. The two anomalous
// categories abort the plan before any file operation, enumerating every
// offending file.
func classify(tree adapter.TreeFS, found []m.Path) ([]m.PlannedFile, error) {
	seq := iter.Seq[m.Path](func(yield func(m.Path) bool) {
		for _, p := range found {
			if !yield(p) {
				return
			}
		}
	})

	part, err := pkg.NewPartition(seq, int(m.ProvenanceCategories), func(p m.Path) int {
		category := 0
		if tree.InSource(p) {
			category++
		}

		if tree.InBuild(p) {
			category += 2
		}

		return category
	})
	if err != nil {
		return nil, err
	}

	missing, err := part.Collect(int(m.ProvenanceNone))
	if err != nil {
		return nil, err
	}

	ambiguous, err := part.Collect(int(m.ProvenanceBoth))
	if err != nil {
		return nil, err
	}

	if len(missing) > 0 || len(ambiguous) > 0 {
		return nil, &ProvenanceError{Missing: missing, Ambiguous: ambiguous}
	}

	var files []m.PlannedFile

	for _, provenance := range []m.Provenance{m.ProvenanceSource, m.ProvenanceBuild} {
		paths, err := part.Collect(int(provenance))
		if err != nil {
			return nil, err
		}

		for _, p := range paths {
			files = append(files, m.PlannedFile{Path: p, Provenance: provenance})
		}
	}

	return files, nil
}

// schemaSet combines the metadata-derived schema with declared extras,
// derived first, duplicates removed.
func schemaSet(md m.Metadata, declared []string) []string {
	var schemas []string

	seen := make(map[string]struct{})

	add := func(name string) {
		if name == "" {
			return
		}

		if _, ok := seen[name]; ok {
			return
		}

		seen[name] = struct{}{}
		schemas = append(schemas, name)
	}

	add(md.SchemaFile())

	for _, name := range declared {
		add(name)
	}

	return schemas
}

func plannedPaths(files []m.PlannedFile) []m.Path {
	paths := make([]m.Path, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}

	return paths
}
