package main

import (
	"github.com/funthingsnearme/nearby/cmd/app"
)

func main() {
	app.Run()
}
