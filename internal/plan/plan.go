// Package plan loads an HCL plan file: one phantom block carrying the build
// configuration and one or more run blocks, each describing a calculation to
// set up. A plan is the file-based alternative to spelling everything out as
// command-line flags.
package plan

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/phantombuild/internal/ctxlog"
	"github.com/vk/phantombuild/internal/phantom"
)

// Build is the shared build configuration from the plan's phantom block.
type Build struct {
	Dir        string
	Version    string
	Patches    []string
	Setup      string
	System     string
	ExtraFlags []phantom.MakeOption
	HDF5Dir    string
}

// Run is one calculation to set up after the build.
type Run struct {
	Prefix    string
	Dir       string
	SetupFile string
	InFile    string
	JobScript string
}

// Plan is a fully decoded plan file.
type Plan struct {
	Phantom Build
	Runs    []Run
}

// fileRoot mirrors the top-level block structure of a plan file.
type fileRoot struct {
	Phantom *phantomBlock `hcl:"phantom,block"`
	Runs    []*runBlock   `hcl:"run,block"`
}

type phantomBlock struct {
	Dir        string   `hcl:"dir,optional"`
	Version    string   `hcl:"version,optional"`
	Patches    []string `hcl:"patches,optional"`
	Setup      string   `hcl:"setup"`
	System     string   `hcl:"system"`
	ExtraFlags []string `hcl:"extra_flags,optional"`
	HDF5Dir    string   `hcl:"hdf5_dir,optional"`
}

type runBlock struct {
	Prefix    string `hcl:"prefix"`
	Dir       string `hcl:"dir"`
	SetupFile string `hcl:"setup_file"`
	InFile    string `hcl:"in_file"`
	JobScript string `hcl:"job_script,optional"`
}

// Load parses and decodes the plan file at path.
func Load(ctx context.Context, path string) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading plan file.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse plan file %s: %w", path, diags)
	}

	evalCtx, err := evalContext()
	if err != nil {
		return nil, err
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, evalCtx, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode plan file %s: %w", path, diags)
	}

	if root.Phantom == nil {
		return nil, fmt.Errorf("plan file %s: missing required phantom block", path)
	}
	if len(root.Runs) == 0 {
		return nil, fmt.Errorf("plan file %s: at least one run block is required", path)
	}

	p := &Plan{
		Phantom: Build{
			Dir:     root.Phantom.Dir,
			Version: root.Phantom.Version,
			Patches: root.Phantom.Patches,
			Setup:   root.Phantom.Setup,
			System:  root.Phantom.System,
			HDF5Dir: root.Phantom.HDF5Dir,
		},
	}

	for _, pair := range root.Phantom.ExtraFlags {
		opt, err := phantom.ParseMakeOption(pair)
		if err != nil {
			return nil, fmt.Errorf("plan file %s: %w", path, err)
		}
		p.Phantom.ExtraFlags = append(p.Phantom.ExtraFlags, opt)
	}

	for _, run := range root.Runs {
		p.Runs = append(p.Runs, Run{
			Prefix:    run.Prefix,
			Dir:       run.Dir,
			SetupFile: run.SetupFile,
			InFile:    run.InFile,
			JobScript: run.JobScript,
		})
	}

	logger.Debug("Plan file loaded.", "runs", len(p.Runs))
	return p, nil
}

// evalContext exposes home and pwd as plan expression variables so plan
// files can spell portable paths like "${home}/runs/disc".
func evalContext() (*hcl.EvalContext, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("determining home directory: %w", err)
	}
	pwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determining working directory: %w", err)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"home": cty.StringVal(home),
			"pwd":  cty.StringVal(pwd),
		},
	}, nil
}
