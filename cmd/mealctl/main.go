// Command mealctl inspects meal catalogs and plan snapshots offline.
package main

import (
	"github.com/joho/godotenv"

	"github.com/mealsync/backend/internal/integration/entrypoint/cli"
)

func main() {
	_ = godotenv.Load()
	cli.Execute()
}
