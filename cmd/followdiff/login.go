package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/followdiff"
)

// Run executes the login command.
func (c *LoginCmd) Run(deps *Dependencies) error {
	a, err := deps.Automator()
	if err != nil {
		return err
	}
	defer a.Close()

	ok, err := a.CheckLogin(deps.Ctx)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintln(deps.Stdout, "Logged in.")
		return nil
	}
	if c.Wait <= 0 {
		fmt.Fprintln(deps.Stderr, "Hint: run 'followdiff login --wait 5m' and log in in the browser window")
		return followdiff.Errorf(followdiff.EINVALID, "not logged in")
	}

	if err := a.Open(deps.Ctx, followdiff.ProfileHost); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Log in in the browser window. Waiting up to %s...\n", c.Wait)

	deadline := time.NewTimer(c.Wait)
	defer deadline.Stop()
	ticker := time.NewTicker(c.Poll)
	defer ticker.Stop()
	for {
		select {
		case <-deps.Ctx.Done():
			return deps.Ctx.Err()
		case <-deadline.C:
			return followdiff.Errorf(followdiff.EINVALID, "not logged in after %s", c.Wait)
		case <-ticker.C:
			ok, err := a.CheckLogin(deps.Ctx)
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintln(deps.Stdout, "Logged in.")
				return nil
			}
		}
	}
}
