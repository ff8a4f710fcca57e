// Package main implements the tagging CLI tool.
//
// The tagging tool automates version tagging of a git repository. It reads the
// latest version tag from the remote (or takes an explicit starting version),
// increments it by the requested component, checks whether the branch changed
// since that tag and, if so, optionally commits and pushes some files and then
// creates and pushes the new tag.
//
// Command Usage:
//
//	tagging git [flags] <url> <path>
//
// Flags:
//
//	--version-type, -vt:     Component to increment: major, minor or patch (default "patch").
//	--evaluate, -e:          Only print the next version. Prints nothing when there are no changes.
//	--commit-and-push, -cap: File to commit and push before tagging. May be repeated.
//	--message, -m:           Commit message used with --commit-and-push (default "").
//	--from-version, -fm:     Compute the next version from this version instead of the latest tag.
//	--branch, -b:            Branch to tag (default "master").
//	--switch-branch, -swb:   Only check out the branch in <path>; takes priority over everything else.
//	--strict:                Reject malformed versions instead of reading missing parts as 0.
//	--config:                YAML file with defaults (default ".tagging.yml" when present).
//	-v, -vv:                 Verbose and debug output on stderr.
//
// Defaults for --branch, --version-type, --message and --strict may also come
// from TAGGING_BRANCH, TAGGING_VERSION_TYPE, TAGGING_MESSAGE and TAGGING_STRICT,
// which in turn may be set in a .env file.
//
// Examples:
//
//	# Tag the next patch version (e.g. 1.2.3 → 1.2.4) if master changed
//	tagging git git@example.com:acme/app.git ./app
//
//	# Tag the next minor version (e.g. 1.2.3 → 1.3.0) on main
//	tagging git -vt minor -b main git@example.com:acme/app.git ./app
//
//	# Print the version that would be tagged
//	tagging git -e git@example.com:acme/app.git ./app
//
//	# Commit a changelog first
//	tagging git -cap CHANGELOG.md -m "release" git@example.com:acme/app.git ./app
//
//	# Start from an explicit version (2.0.0 → 3.0.0)
//	tagging git -fm 2.0.0 -vt major git@example.com:acme/app.git ./app
//
// For the library API see the "pkg" package.
package main
