package main

import "github.com/trebuchet/trebuchet/cmd/trebuchet"

func main() {
	trebuchet.Execute()
}
