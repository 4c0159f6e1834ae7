package main

import "github.com/suhome/storefront/internal/cmd"

func main() {
	cmd.Execute()
}
