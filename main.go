package main

import "github.com/jjaramillod93/goshake/cmd"

func main() {
	cmd.Execute()
}
