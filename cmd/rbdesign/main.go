package main

import "github.com/jdaaph/rbdesign/cmd/rbdesign/cmd"

func main() {
	cmd.Execute()
}
