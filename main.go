// main.go
package main

import "table-booking/cmd"

func main() {
	cmd.Execute()
}
