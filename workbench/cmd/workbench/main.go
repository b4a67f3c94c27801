// Command workbench evaluates a technician's session file with the trim,
// strength and cloth engines.
//
// Usage:
//
//	workbench trim session.yaml [--watch] [--format text|yaml|json]
//	workbench evaluate --measured 37 --original 190 [--manufacturer Liros --spec "PPSL 190"]
//	workbench distribution --rows 3 --load 110
//	workbench load-test --row A --rows 3 --max-weight 110 --strength 190 --lines 20
//	workbench classify Liros "DSL 70 Dyneema"
//	workbench cloth session.yaml
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "workbench:", err)
		os.Exit(1)
	}
}
