// Command git-version-builder writes the version of a git repository into a
// Python, C++ or Go source file.
package main

import "github.com/oshokin/git-version-builder/cmd/git-version-builder/cmd"

func main() {
	cmd.Execute()
}
