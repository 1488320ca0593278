package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/followdiff"
	"github.com/fwojciec/followdiff/action"
)

// Run executes the unfollow command.
func (c *UnfollowCmd) Run(deps *Dependencies) error {
	return runAction(deps, followdiff.ActionUnfollow, c.Targets)
}

// Run executes the remove-requests command.
func (c *RemoveRequestsCmd) Run(deps *Dependencies) error {
	return runAction(deps, followdiff.ActionRemoveRequest, c.Targets)
}

func runAction(deps *Dependencies, act followdiff.Action, flags TargetFlags) error {
	targets, err := flags.resolve(deps, act)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		fmt.Fprintln(deps.Stdout, "Nothing to do.")
		return nil
	}
	if !flags.Simulate && !flags.Yes {
		fmt.Fprintf(deps.Stderr, "%d accounts selected: %s\n", len(targets), preview(targets, 10))
		return followdiff.Errorf(followdiff.EINVALID, "refusing to act on the live account without --yes (use --simulate to preview)")
	}

	runner := &action.Runner{
		Limiter:  action.NewLimiter(deps.Config.Actions.Interval),
		Simulate: flags.Simulate,
		Logger:   deps.Logger,
	}
	if !flags.Simulate {
		a, err := deps.Automator()
		if err != nil {
			return err
		}
		defer a.Close()

		ok, err := a.CheckLogin(deps.Ctx)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(deps.Stderr, "Hint: run 'followdiff login --wait 5m' first")
			return followdiff.Errorf(followdiff.EINVALID, "not logged in")
		}
		runner.Automator = a
	}

	bar := newProgressBar(deps, len(targets), actionLabel(act))
	outcomes, err := runner.Run(deps.Ctx, act, targets, func(p followdiff.ActionProgress) {
		_ = bar.Add(1)
		if p.Outcome.Err != nil && deps.Ctx.Err() == nil {
			fmt.Fprintf(deps.Stderr, "failed: %s: %s\n", p.Outcome.Username, followdiff.ErrorMessage(p.Outcome.Err))
		}
	})
	if err != nil {
		_ = bar.Exit()
		return err
	}
	_ = bar.Finish()

	tally := action.Count(outcomes)
	if flags.Simulate {
		for _, o := range outcomes {
			if o.Err == nil {
				fmt.Fprintf(deps.Stdout, "would %s %s\n", actionVerb(act), o.Username)
			}
		}
	}
	fmt.Fprintf(deps.Stdout, "%s: %d done, %d simulated, %d failed, %d cancelled\n",
		actionLabel(act), tally.Succeeded, tally.Simulated, tally.Failed, tally.Cancelled)

	if err := deps.Ctx.Err(); err != nil {
		return err
	}
	if tally.Failed > 0 {
		return followdiff.Errorf(followdiff.EINTERNAL, "%d of %d actions failed", tally.Failed, len(outcomes))
	}
	return nil
}

// resolve returns the target usernames, deduplicated case-insensitively in
// first-seen order and capped at Limit.
func (t *TargetFlags) resolve(deps *Dependencies, act followdiff.Action) ([]string, error) {
	if len(t.Usernames) > 0 && (t.FromArchive != "" || t.FromFile != "") {
		return nil, followdiff.Errorf(followdiff.EINVALID, "pass usernames or a source file, not both")
	}

	var usernames []string
	switch {
	case t.FromArchive != "":
		res, err := importArchive(deps, t.FromArchive, "")
		if err != nil {
			return nil, err
		}
		usernames, err = archiveTargets(res, act)
		if err != nil {
			return nil, err
		}
	case t.FromFile != "":
		records, err := parseFile(deps, t.FromFile)
		if err != nil {
			return nil, err
		}
		usernames = followdiff.Usernames(records)
	default:
		for _, u := range t.Usernames {
			usernames = append(usernames, strings.TrimPrefix(strings.TrimSpace(u), "@"))
		}
	}

	seen := make(map[string]bool, len(usernames))
	var targets []string
	for _, u := range usernames {
		key := strings.ToLower(u)
		if u == "" || seen[key] {
			continue
		}
		seen[key] = true
		targets = append(targets, u)
		if t.Limit > 0 && len(targets) == t.Limit {
			break
		}
	}
	return targets, nil
}

// archiveTargets picks the accounts an action applies to from an import.
func archiveTargets(res *followdiff.RunResult, act followdiff.Action) ([]string, error) {
	switch act {
	case followdiff.ActionUnfollow:
		// Without followers every followed account would be a target.
		if err := listErr(res, followdiff.ListFollowers); err != nil {
			return nil, err
		}
		if err := listErr(res, followdiff.ListFollowing); err != nil {
			return nil, err
		}
		return followdiff.Usernames(res.NonFollowers), nil
	case followdiff.ActionRemoveRequest:
		if err := listErr(res, followdiff.ListRequestsReceived); err != nil {
			return nil, err
		}
		return followdiff.Usernames(res.RequestsReceived()), nil
	default:
		return nil, followdiff.Errorf(followdiff.EINVALID, "unknown action %q", act)
	}
}

func listErr(res *followdiff.RunResult, kind followdiff.ListKind) error {
	l, ok := res.Lists[kind]
	if !ok {
		return followdiff.Errorf(followdiff.ENOTFOUND, "%s list missing from export", kind.Title())
	}
	if l.Err != nil {
		return followdiff.Errorf(followdiff.ErrorCode(l.Err), "%s list unavailable: %s", kind.Title(), followdiff.ErrorMessage(l.Err))
	}
	return nil
}

func actionLabel(act followdiff.Action) string {
	if act == followdiff.ActionRemoveRequest {
		return "Removing requests"
	}
	return "Unfollowing"
}

func actionVerb(act followdiff.Action) string {
	if act == followdiff.ActionRemoveRequest {
		return "remove request from"
	}
	return "unfollow"
}

func preview(names []string, n int) string {
	if len(names) <= n {
		return strings.Join(names, ", ")
	}
	return strings.Join(names[:n], ", ") + fmt.Sprintf(", and %d more", len(names)-n)
}
