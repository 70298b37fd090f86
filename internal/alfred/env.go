// Package alfred covers the two sides of the Alfred Script Filter contract:
// locating the workflow's cache and data directories, and emitting the
// feedback JSON that Alfred renders as results.
package alfred

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// appName namespaces the fallback directories used outside Alfred.
const appName = "alfred-reminders"

// CacheDir returns the directory for volatile workflow data. Inside Alfred
// this is the directory Alfred assigns to the workflow; outside (running
// rem from a terminal) it falls back to the XDG cache home.
func CacheDir() string {
	if dir := os.Getenv("alfred_workflow_cache"); dir != "" {
		return dir
	}
	return filepath.Join(xdg.CacheHome, appName)
}

// DataDir returns the directory for durable workflow data such as settings.
func DataDir() string {
	if dir := os.Getenv("alfred_workflow_data"); dir != "" {
		return dir
	}
	return filepath.Join(xdg.DataHome, appName)
}

// BundleID returns the workflow's bundle ID, or an empty string when not
// running inside Alfred.
func BundleID() string {
	return os.Getenv("alfred_workflow_bundleid")
}
