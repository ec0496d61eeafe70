package main

import (
	"os"

	"github.com/vitrine-media/vitrine/listingservice"
)

func main() {
	if err := listingservice.Run(); err != nil {
		os.Exit(1)
	}
}
