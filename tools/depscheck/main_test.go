package main

import (
	"testing"

	"golang.org/x/tools/go/packages"
)

func pkg(path string, imports ...*packages.Package) *packages.Package {
	p := &packages.Package{PkgPath: path, Imports: make(map[string]*packages.Package)}
	for _, dep := range imports {
		p.Imports[dep.PkgPath] = dep
	}
	return p
}

func TestFindViolationsWalksTransitiveImports(t *testing.T) {
	httptrace := pkg("net/http/httptrace")
	render := pkg("legend-of-kiro/internal/render", httptrace)
	mathPkg := pkg("math")
	worldPkg := pkg("legend-of-kiro/internal/world", mathPkg)
	simPkg := pkg("legend-of-kiro/internal/sim", worldPkg, render)

	got := findViolations([]*packages.Package{worldPkg, simPkg})
	want := []string{
		"legend-of-kiro/internal/sim -> legend-of-kiro/internal/render",
		"legend-of-kiro/internal/sim -> net/http/httptrace",
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFindViolationsCleanGraph(t *testing.T) {
	state := pkg("legend-of-kiro/internal/state", pkg("legend-of-kiro/internal/world", pkg("math")))
	if got := findViolations([]*packages.Package{state}); len(got) != 0 {
		t.Fatalf("expected no violations, got %v", got)
	}
}
