package main

import "github.com/Manu343726/nesview/cmd"

func main() {
	cmd.Execute()
}
