package main

import "github.com/naka-gawa/profile-cards/cmd"

func main() {
	cmd.Execute()
}
