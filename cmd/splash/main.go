package main

import "github.com/softglow/splash/cmd"

func main() {
	cmd.Execute()
}
