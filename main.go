package main

import (
	"github.com/mj1618/focus-border/cmd"

	_ "github.com/mj1618/focus-border/internal/platform/darwin"
	_ "github.com/mj1618/focus-border/internal/platform/x11"
)

func main() {
	cmd.Execute()
}
