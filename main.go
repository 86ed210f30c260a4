package main

import (
	"os"

	"github.com/regexscan/regexscan/cmd/regexscan"
)

func main() {
	os.Exit(regexscan.Execute())
}
