package main

import "dienstmarkt_backend/internal/app"

func main() {
	app.Run()
}
