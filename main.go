// main.go
package main

import "github.com/webdevRafa/rancho-de-paloma-blanca-sub000/cmd"

func main() {
	cmd.Execute()
}
