// Command areamethod proves plane geometry theorems with the area method.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/npillmayer/areamethod"
	"github.com/npillmayer/areamethod/areamethod/cli"
)

func main() {
	var stop context.CancelFunc
	areamethod.SignalContext, stop = signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	cli.Execute()
}
