package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

const modulePath = "legend-of-kiro"

// corePackages must stay free of rendering and transport code.
var corePackages = []string{
	modulePath + "/internal/world",
	modulePath + "/internal/state",
	modulePath + "/internal/combat",
	modulePath + "/internal/ai",
	modulePath + "/internal/sim",
}

var forbiddenPrefixes = []string{
	modulePath + "/internal/render",
	modulePath + "/internal/net",
	modulePath + "/internal/app",
	"github.com/hajimehoshi/ebiten",
	"github.com/gdamore/tcell",
	"github.com/gorilla/",
	"net/http",
}

func main() {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedImports | packages.NeedDeps,
	}
	pkgs, err := packages.Load(cfg, corePackages...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "depscheck: failed to load packages: %v\n", err)
		os.Exit(1)
	}
	if packages.PrintErrors(pkgs) > 0 {
		fmt.Fprintln(os.Stderr, "depscheck: package load reported errors")
		os.Exit(1)
	}

	violations := findViolations(pkgs)
	if len(violations) > 0 {
		fmt.Fprintln(os.Stderr, "depscheck: found forbidden imports:")
		for _, violation := range violations {
			fmt.Fprintf(os.Stderr, "  %s\n", violation)
		}
		os.Exit(1)
	}
}

// findViolations walks the import graph below each root and reports every
// forbidden package it reaches, directly or transitively.
func findViolations(roots []*packages.Package) []string {
	var violations []string
	for _, root := range roots {
		seen := make(map[string]bool)
		var walk func(pkg *packages.Package)
		walk = func(pkg *packages.Package) {
			for path, dep := range pkg.Imports {
				if seen[path] {
					continue
				}
				seen[path] = true
				if forbidden(path) {
					violations = append(violations, fmt.Sprintf("%s -> %s", root.PkgPath, path))
				}
				if dep != nil {
					walk(dep)
				}
			}
		}
		walk(root)
	}
	sort.Strings(violations)
	return violations
}

func forbidden(importPath string) bool {
	for _, prefix := range forbiddenPrefixes {
		if strings.HasPrefix(importPath, prefix) {
			return true
		}
	}
	return false
}
