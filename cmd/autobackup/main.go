// autobackup manages backup settings and creates rotated database backups.
package main

import (
	"fmt"
	"os"

	"github.com/gopasspw/iniconfig/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
