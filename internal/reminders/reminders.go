// Package reminders talks to Reminders.app through osascript.
//
// Scripting Reminders.app is slow (a round-trip regularly takes seconds),
// which is why results are cached and refreshed in the background. JXA
// would allow JSON output, but its Reminders.app support is unreliable,
// so the AppleScript emits tab-separated values instead.
package reminders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deanishe/alfred-reminders-demo/internal/cmd"
	"github.com/deanishe/alfred-reminders-demo/internal/log"
)

// listsScript prints one line per list: account name, list name and list ID
// separated by tabs. Lists whose properties can't be read are skipped.
const listsScript = `
property tabChar : (ASCII character 9)
tell application "Reminders"
	set output to ""
	repeat with acc in accounts
		set accName to (name of acc)
		repeat with lst in lists of acc
			set lstName to missing value
			set lstID to missing value
			try
				set lstName to (name of lst)
				set lstID to (id of lst)
			on error errMsg number errNo
				log "[" & (errNo as text) & "] " & errMsg
			end try
			if lstName is not missing value and lstID is not missing value then
				if output is not "" then
					set output to output & linefeed
				end if
				set output to output & accName & tabChar & lstName & tabChar & lstID
			end if
		end repeat
	end repeat
	return output
end tell
`

// openScript shows the list with the ID passed as the first argument.
const openScript = `
on run (argv)
	set targetID to first item of argv
	tell application "Reminders"
		repeat with lst in lists
			if (id of lst) is targetID then
				show lst
				activate
				return ""
			end if
		end repeat
	end tell
	return "no list with ID " & targetID
end run
`

// List is a single Reminders.app list.
type List struct {
	Account string `json:"account"`
	Name    string `json:"name"`
	ID      string `json:"id"`
}

// runAS executes an AppleScript through osascript with extra arguments
// passed to the script's run handler.
func runAS(ctx context.Context, script string, args ...string) (string, error) {
	osArgs := append([]string{"-l", "AppleScript", "-e", script}, args...)
	out, err := cmd.OutputContext(ctx, "osascript", osArgs...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Fetch queries Reminders.app for all lists across all accounts.
// This is the slow round-trip; callers should bound it with a deadline
// on ctx. A cancelled or expired context kills the osascript call.
func Fetch(ctx context.Context) ([]List, error) {
	out, err := runAS(ctx, listsScript)
	if err != nil {
		return nil, fmt.Errorf("query Reminders.app: %w", err)
	}
	return parseLists(ctx, out), nil
}

// parseLists converts the script's tab-separated output into lists,
// skipping malformed lines.
func parseLists(ctx context.Context, output string) []List {
	l := log.FromContext(ctx)

	var lists []List
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cells := strings.Split(line, "\t")
		if len(cells) != 3 {
			l.Warn().Str("line", line).Msg("invalid list line")
			continue
		}
		lists = append(lists, List{
			Account: cells[0],
			Name:    cells[1],
			ID:      cells[2],
		})
	}
	return lists
}

// Open shows the list with the given ID in Reminders.app.
func Open(ctx context.Context, listID string) error {
	out, err := runAS(ctx, openScript, listID)
	if err != nil {
		return fmt.Errorf("open list in Reminders.app: %w", err)
	}
	if msg := strings.TrimSpace(out); msg != "" {
		return errors.New(msg)
	}
	return nil
}

// FilterAccounts returns the lists belonging to the given accounts.
// An empty allow-list keeps everything.
func FilterAccounts(lists []List, accounts []string) []List {
	if len(accounts) == 0 {
		return lists
	}
	allowed := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		allowed[a] = true
	}
	var filtered []List
	for _, l := range lists {
		if allowed[l.Account] {
			filtered = append(filtered, l)
		}
	}
	return filtered
}
