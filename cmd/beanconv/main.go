// Command beanconv converts and formats values with the beanutils converter
// and locale registries.
//
//	beanconv convert --type float64 --locale de --pattern '#,##0.00' 1.234,56
//	beanconv format --kind date --locale fr --pattern 'd MMMM yyyy' 2024-03-01T00:00:00Z
//	beanconv types
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
