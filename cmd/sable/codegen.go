package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sable/internal/diag"
	"sable/internal/driver"
	"sable/internal/project"
)

var errUnknownColorMode = func(mode string) error {
	return fmt.Errorf("unknown color mode %q (must be auto, on, or off)", mode)
}

var codegenCmd = &cobra.Command{
	Use:   "codegen [flags] [path]",
	Short: "Lower compiled units into debug metadata dumps",
	Long: "Lower every *.sir unit under a project directory into *.dbg.msgpack " +
		"debug metadata dumps, using sable.toml for build settings.",
	Args: cobra.MaximumNArgs(1),
	RunE: codegenExecution,
}

func init() {
	codegenCmd.Flags().String("out", "", "output directory for metadata dumps")
	codegenCmd.Flags().Int("opt", -1, "optimization level override (-1 uses sable.toml)")
	codegenCmd.Flags().Bool("no-debug-info", false, "skip debug metadata emission")
	codegenCmd.Flags().Int("jobs", 0, "parallel unit workers (0 = number of CPUs)")
}

func codegenExecution(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	optOverride, err := cmd.Flags().GetInt("opt")
	if err != nil {
		return err
	}
	noDebugInfo, err := cmd.Flags().GetBool("no-debug-info")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	req := driver.CodegenRequest{
		Dir:            dir,
		OutDir:         outDir,
		DebugInfo:      true,
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
	}

	manifest, found, err := project.Load(dir)
	if err != nil {
		return err
	}
	if found {
		req.DebugInfo = manifest.Config.Build.DebugInfoEnabled()
		req.OptLevel = manifest.Config.Build.OptLevel
		if req.OutDir == "" && manifest.Config.Build.OutDir != "" {
			req.OutDir = filepath.Join(manifest.Root, manifest.Config.Build.OutDir)
		}
	}
	if optOverride >= 0 {
		req.OptLevel = optOverride
	}
	if noDebugInfo {
		req.DebugInfo = false
	}

	results, err := driver.CodegenDir(cmd.Context(), &req)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no unit files found under %s", dir)
	}

	failed := 0
	written := 0
	for _, res := range results {
		printDiagnostics(res.Path, res.Bag)
		if res.Bag.HasErrors() {
			failed++
			continue
		}
		written++
		if !quiet && res.OutPath != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d entries)\n", res.OutPath, res.Nodes)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d units failed", failed, len(results))
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "codegen complete: %d units\n", written)
	}
	return nil
}

var (
	errorLabel   = color.New(color.FgRed, color.Bold)
	warningLabel = color.New(color.FgYellow, color.Bold)
	infoLabel    = color.New(color.FgCyan)
)

func printDiagnostics(path string, bag *diag.Bag) {
	for _, d := range bag.Items() {
		var label string
		switch {
		case d.Severity >= diag.SevError:
			label = errorLabel.Sprint("error")
		case d.Severity >= diag.SevWarning:
			label = warningLabel.Sprint("warning")
		default:
			label = infoLabel.Sprint("info")
		}
		fmt.Fprintf(os.Stderr, "%s: %s[%s]: %s\n", path, label, d.Code, d.Message)
	}
}
