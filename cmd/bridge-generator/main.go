// Package main provides the CLI entrypoint for bridge-generator.
//
// bridge-generator reads //bridge:map directives (and an optional mapping
// file), resolves how every field crosses the boundary and writes the
// <Name>ToBridge / <Name>FromBridge conversion functions into each package.
//
// Usage:
//
//	bridge-generator [gen|check] [flags]
//
// Typical use is a go:generate line in the package holding the declarations:
//
//	//go:generate go run bridge-generator/cmd/bridge-generator
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}
