package engine

// CheckRequest represents a request to detect changed packages and record intents.
type CheckRequest struct {
	// CWD is the directory relative paths in Files are resolved against
	CWD string

	// Files overrides the version-control status with explicit paths
	// If empty, changed files come from git status
	Files []string
}

// VersionRequest represents a request to apply pending intent records.
type VersionRequest struct {
	// DryRun computes the bumps without touching any file
	DryRun bool
}

// ReleaseRequest represents a request to build and publish released packages.
type ReleaseRequest struct {
	// Token is the credential passed to the publish command
	Token string
}

// StatusRequest represents a request for pending state.
type StatusRequest struct{}
