// main.go
package main

import "github.com/inkmon/inkstat/cmd"

func main() {
	cmd.Execute()
}
