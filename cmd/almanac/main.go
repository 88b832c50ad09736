// cmd/almanac/main.go
package main

import (
	"almanac/internal/app"
	"almanac/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
