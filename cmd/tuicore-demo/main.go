// Command tuicore-demo drives pkg/engine through a scripted counter
// application, to exercise the runtime end to end outside of a real
// terminal.
package main

import "github.com/nextcore/tuicore/cmd/tuicore-demo/cmd"

func main() {
	cmd.Execute()
}
