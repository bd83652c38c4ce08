package main

import "modelexport/internal/cli"

func main() { cli.Main() }
