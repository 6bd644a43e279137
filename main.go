package main

import (
	_ "time/tzdata"

	"github.com/inovacc/wifilog/cmd"
)

func main() {
	cmd.Execute()
}
