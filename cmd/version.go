package cmd

import "fmt"

// Version is stamped by the build; the default marks dev builds.
var Version = "dev"

// RunVersion prints the tool version.
func RunVersion() error {
	fmt.Printf("ifstate %s\n", Version)
	return nil
}
