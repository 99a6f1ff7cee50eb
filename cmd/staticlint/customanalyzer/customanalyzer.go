// Package customanalyzer provides custom code analysis.
package customanalyzer

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
)

// OsExitInMainAnalyzer reports direct os.Exit calls inside the main function of package main.
var OsExitInMainAnalyzer = &analysis.Analyzer{
	Name: "osexitinmain",
	Doc:  "checks for direct os.Exit calls in the main function of package main",
	Run:  run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	if pass.Pkg.Name() != "main" {
		return nil, nil
	}
	for _, file := range pass.Files {
		for _, decl := range file.Decls {
			funcDecl, ok := decl.(*ast.FuncDecl)
			if !ok || funcDecl.Name.Name != "main" {
				continue
			}
			ast.Inspect(funcDecl, func(node ast.Node) bool {
				callExpr, ok := node.(*ast.CallExpr)
				if !ok {
					return true
				}
				selectorExpr, ok := callExpr.Fun.(*ast.SelectorExpr)
				if !ok {
					return true
				}
				ident, ok := selectorExpr.X.(*ast.Ident)
				if !ok {
					return true
				}
				if ident.Name == "os" && selectorExpr.Sel.Name == "Exit" {
					pass.Reportf(callExpr.Pos(), "direct os.Exit call in main function")
				}
				return true
			})
		}
	}
	return nil, nil
}
