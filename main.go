////////////////////////////////////////////////////////////////////////////////
// govlock: token locking and app governance on a local block clock
////////////////////////////////////////////////////////////////////////////////

package main

import (
	"os"

	"govlock/cli"
)

func main() {
	os.Exit(cli.Execute())
}
