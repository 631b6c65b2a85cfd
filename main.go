package main

import "bg3-modsettings/cmd"

func main() {
	cmd.Execute()
}
