// Command viewgraph runs the report view relationship graph service.
package main

import "github.com/leapstack-labs/viewgraph/internal/cli"

func main() {
	cli.Execute()
}
