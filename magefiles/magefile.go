//go:build mage

// Package main provides build targets for the wordbubble project using Mage.
//
// Usage:
//
//	mage build      Compile the wordbubble binary to bin/
//	mage test       Run all tests
//	mage testRace   Run all tests with the race detector
//	mage cover      Write coverage to bin/coverage.out and print a summary
//	mage lint       Run golangci-lint
//	mage smoke      Build, then drive init/login/submit against temp dirs
//	mage clean      Remove build artifacts
//	mage install    Install wordbubble to GOPATH/bin
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binLint    = "golangci-lint"
	binaryName = "wordbubble"
	binaryDir  = "bin"
	cmdDir     = "./cmd/wordbubble"
)

// Build compiles the wordbubble binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// TestRace runs all tests with the race detector.
func TestRace() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Cover writes a coverage profile and prints per-function coverage.
func Cover() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	profile := filepath.Join(binaryDir, "coverage.out")
	if err := sh.RunV(binGo, "test", "-coverprofile="+profile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func="+profile)
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV(binLint, "run", "./...")
}

// Smoke runs the built binary through init, login and two submissions in a
// throwaway config and data directory.
func Smoke() error {
	mg.Deps(Build)
	tmp, err := os.MkdirTemp("", "wordbubble-smoke-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmp)

	bin := filepath.Join(binaryDir, binaryName)
	dirs := []string{
		"--config-dir", filepath.Join(tmp, "config"),
		"--data-dir", filepath.Join(tmp, "data"),
	}
	steps := [][]string{
		{"init"},
		{"login"},
		{"submit", "the", "quick", "fox"},
		{"submit", "the", "quick", "fox"},
		{"word", "the"},
	}
	for _, step := range steps {
		if err := sh.RunV(bin, append(dirs, step...)...); err != nil {
			return fmt.Errorf("smoke %v: %w", step, err)
		}
	}
	return nil
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
