package main

import "travel-admin/cmd"

func main() {
	cmd.Execute()
}
