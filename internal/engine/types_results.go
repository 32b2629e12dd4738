package engine

import (
	"github.com/danieljhkim/workspyce/internal/bump"
	"github.com/danieljhkim/workspyce/internal/intent"
)

// CheckResult represents the outcome of a check run.
type CheckResult struct {
	// Changed is the number of changed files considered
	Changed int `json:"changed"`

	// Recorded lists the intent records written in this run
	Recorded []RecordedIntent `json:"recorded"`

	// Ignored lists packages for which the operator declined a release
	Ignored []string `json:"ignored"`

	// Skipped lists packages that were not prompted for
	Skipped []SkippedPackage `json:"skipped"`

	// Errors lists per-file failures that did not abort the run
	Errors []FileError `json:"errors"`

	// Warnings carries degraded best-effort steps
	Warnings []string `json:"warnings"`
}

// RecordedIntent is one intent record written by check.
type RecordedIntent struct {
	File        string    `json:"file"`
	Package     string    `json:"package"`
	Root        string    `json:"root"`
	Kind        bump.Kind `json:"kind"`
	Description string    `json:"description"`
}

// SkippedPackage is a package that check did not prompt for.
type SkippedPackage struct {
	Package string `json:"package"`
	Root    string `json:"root"`
	Reason  string `json:"reason"`
}

// FileError is a failure scoped to one changed file.
type FileError struct {
	Path string `json:"path"`
	Err  error  `json:"-"`

	// Message is Err rendered for JSON output
	Message string `json:"error"`
}

// VersionResult represents the outcome of a version run.
type VersionResult struct {
	// Bumps lists the applied (or planned, on dry run) bumps in processing order
	Bumps []Bump `json:"bumps"`

	// Manifest is the release manifest content written
	Manifest []string `json:"manifest"`

	// DryRun reports whether files were left untouched
	DryRun bool `json:"dry_run"`
}

// Bump is one applied intent record.
type Bump struct {
	Record     string    `json:"record"`
	Package    string    `json:"package"`
	Root       string    `json:"root"`
	OldVersion string    `json:"old_version"`
	NewVersion string    `json:"new_version"`
	Kind       bump.Kind `json:"kind"`

	// Resumed is set when an interrupted run had already bumped the descriptor
	Resumed bool `json:"resumed,omitempty"`
}

// ReleaseResult represents the outcome of a release run.
type ReleaseResult struct {
	// NothingToRelease is set when no release manifest exists
	NothingToRelease bool `json:"nothing_to_release"`

	// Built lists the package roots built, in manifest order
	Built []string `json:"built"`

	// Published reports whether the publish step ran successfully
	Published bool `json:"published"`
}

// StatusResult represents pending workspyce state.
type StatusResult struct {
	// Pending lists intent records in processing order
	Pending []PendingRecord `json:"pending"`

	// Manifest lists package roots awaiting release
	Manifest []string `json:"manifest"`

	// ManifestExists reports whether a release manifest is present
	ManifestExists bool `json:"manifest_exists"`
}

// PendingRecord summarizes one intent record.
type PendingRecord struct {
	File    string    `json:"file"`
	Package string    `json:"package,omitempty"`
	Kind    bump.Kind `json:"kind,omitempty"`
	Summary string    `json:"summary,omitempty"`
	Error   string    `json:"error,omitempty"`
}

func newPendingRecord(file string, r intent.Record) PendingRecord {
	return PendingRecord{
		File:    file,
		Package: r.Package,
		Kind:    r.Release,
		Summary: firstLine(r.Description),
	}
}
