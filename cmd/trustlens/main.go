// trustlens — bootstrap utility for the TrustLens AI governance stack.
// Prepares environment configuration, backend dependencies, the
// directory layout, and the governance data stores.
package main

import "github.com/trustlens/trustlens/internal/cli"

func main() {
	cli.Execute()
}
