// Package main shareit API.
//
// @title           shareit API
// @version         1.0
// @description     Item sharing: users list things, book other users' things and post requests.
// @BasePath        /
// @schemes         http
package main

import "shareit/cmd"

func main() {
	cmd.Execute()
}
