// Command queuebot acepta automáticamente las partidas del cliente de League
// y avisa por escritorio y Discord.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/jose-valero/lcu-queue-bot/internal/infra/config"
)

// se sobreescribe con -ldflags "-X main.version=..."
var version = "dev"

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if err := newRootCmd(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
