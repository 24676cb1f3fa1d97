package main

import "contacts_backend/internal/app"

func main() {
	app.Run()
}
