// Command paradium runs and controls the internet radio appliance.
package main

import "github.com/tessro/paradium/internal/cli"

func main() {
	cli.Execute()
}
