package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/xfmt/internal/cli"
	"github.com/arthur-debert/xfmt/pkg/ui/styles"
)

func main() {
	code, err := cli.Execute(os.Args[1:], cli.DefaultStreams())
	if err != nil {
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
	}

	// The only place xfmt exits; hidden configs are restored by now.
	os.Exit(code)
}
