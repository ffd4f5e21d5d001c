package main

import (
	"fmt"
	"log"
	"os"

	"github.com/aussiebroadwan/inventory/internal/inventory/app"
	"github.com/aussiebroadwan/inventory/pkg/cryptox"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "secret":
			secret, err := cryptox.GenerateSecret()
			if err != nil {
				log.Fatalf("failed to generate secret: %v", err)
			}
			fmt.Println(secret)
			return
		case "version":
			fmt.Println(app.BuildVersion)
			return
		default:
			log.Fatalf("unknown command %q (want: secret, version)", os.Args[1])
		}
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
