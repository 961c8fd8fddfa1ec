package main

import "taskhub-backend/cmd"

func main() {
	cmd.Execute()
}
