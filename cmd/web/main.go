package main

import "lms_backend/internal/app"

func main() {
	app.Run()
}
