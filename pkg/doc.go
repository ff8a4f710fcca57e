// Package tagging decides whether a repository needs a new version tag and
// computes that tag.
//
// It provides:
//   - Increase and Incrementer, which bump a MAJOR.MINOR.PATCH version by one
//     component and reset the lower ones. Malformed input is read leniently
//     unless Incrementer.Strict is set.
//   - Workflow, which asks a Driver for the latest tag and for changes since
//     it, and then either switches branches, prints the next version, skips,
//     or commits and tags.
//
// The git subpackage provides a Driver backed by the git command line client.
//
// Usage Example:
//
//	import (
//	    "log"
//	    "os"
//
//	    tagging "github.com/aoepeople/tagging/pkg"
//	    "github.com/aoepeople/tagging/pkg/git"
//	)
//
//	func main() {
//	    wf := &tagging.Workflow{
//	        Driver: git.New("git@example.com:acme/app.git", nil),
//	        Out:    os.Stdout,
//	    }
//	    _, err := wf.Run(tagging.Request{Path: "./app", Branch: "master", Kind: tagging.Minor})
//	    if err != nil {
//	        log.Fatalf("tagging failed: %v", err)
//	    }
//	}
package tagging
