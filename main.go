package main

import "github.com/Dvegrod/little-toolset/cmd"

func main() {
	cmd.Execute()
}
