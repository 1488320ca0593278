package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/followdiff"
)

// Run executes the open command. The browser stays open until the
// command is interrupted.
func (c *OpenCmd) Run(deps *Dependencies) error {
	target := profileTarget(c.Target)
	if target == "" {
		return followdiff.Errorf(followdiff.EINVALID, "username or URL required")
	}

	a, err := deps.Automator()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Open(deps.Ctx, target); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Opened %s. Press Ctrl+C to close the browser.\n", target)

	<-deps.Ctx.Done()
	return nil
}

// profileTarget turns a username or URL into a URL.
func profileTarget(s string) string {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "://") {
		return s
	}
	s = strings.TrimPrefix(s, "@")
	if s == "" {
		return ""
	}
	return followdiff.ProfileURL(s)
}
