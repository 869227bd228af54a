package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ComedicChimera/olive"

	"github.com/githubhjs/xls/internal/config"
	"github.com/githubhjs/xls/internal/driver"
	"github.com/githubhjs/xls/internal/frontend"
	"github.com/githubhjs/xls/internal/irb"
	"github.com/githubhjs/xls/internal/irprint"
	"github.com/githubhjs/xls/internal/report"
)

func main() {
	cli := olive.NewCLI("dslxc", "dslxc lowers a DSLX module to its IR", true)
	lowerCmd := cli.AddSubcommand("lower", "lower a module's functions to IR", true)
	lowerCmd.AddPrimaryArg("project-path", "the path to the project directory", true)
	lowerCmd.AddFlag("emit-positions", "ep", "attach source spans to every emitted IR node")

	cli.AddSubcommand("version", "print the dslxc version", false)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.PrintWarning("usage error: " + err.Error())
		os.Exit(1)
	}

	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "lower":
		execLower(subResult)
	case "version":
		fmt.Println("dslxc 0.1.0")
	}
}

func execLower(result *olive.ArgParseResult) {
	projectRelPath, _ := result.PrimaryArg()
	projectPath, err := filepath.Abs(projectRelPath)
	if err != nil {
		report.PrintWarning("path error: " + err.Error())
		os.Exit(1)
	}

	proj, err := config.Load(projectPath)
	if err != nil {
		report.PrintWarning("project load error: " + err.Error())
		os.Exit(1)
	}
	if result.HasFlag("emit-positions") {
		proj.EmitPositions = true
	}

	module, info, err := frontend.Load(projectPath)
	if err != nil {
		report.PrintWarning(err.Error())
		os.Exit(1)
	}
	if module == nil || info == nil {
		report.PrintWarning("no module was produced by the front end")
		os.Exit(1)
	}

	pkg := irb.NewPackage(proj.Name)
	errs := driver.ConvertModule(pkg, module, info, driver.Options{EmitPositions: proj.EmitPositions})
	for _, e := range errs {
		report.PrintConversionError(e)
	}
	if len(errs) > 0 {
		os.Exit(1)
	}

	out := irprint.Package(pkg)
	if proj.OutputPath == "" {
		fmt.Print(out)
		return
	}
	if err := writeOutput(proj.OutputPath, out); err != nil {
		report.PrintWarning("write output error: " + err.Error())
		os.Exit(1)
	}
	report.PrintInfo("wrote " + proj.OutputPath)
}

func writeOutput(path, contents string) error {
	if path == "" {
		return errors.New("empty output path")
	}
	return os.WriteFile(path, []byte(contents), 0o644)
}
