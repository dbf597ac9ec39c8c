package main

import (
	"log"

	_ "github.com/lib/pq"

	"github.com/jeff-stratofied/reporting-phase2/cmd"
)

func main() {
	deps, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(deps)

	err = deps.ApiHandler.StartApi(deps.Config.Server.Port)
	if err != nil {
		log.Fatal(err)
	}
}
