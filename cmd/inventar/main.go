// Package main starts the inventory service.
package main

import "github.com/hjemme/inventar/pkg/cmd"

func main() {
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}
