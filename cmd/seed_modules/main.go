// seed_modules genera el script SQL que sincroniza la tabla module_catalog con
// el catálogo del servicio y las reglas de MODULES_DEPENDENCIES.
//
// Uso: go run ./cmd/seed_modules [ruta/salida.sql]
// Por defecto escribe internal/infrastructure/postgres/migrations/002_seed_module_catalog.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/Invorya-access-api/internal/domain/module"
	"github.com/jhoicas/Invorya-access-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Invorya-access-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	rules, err := module.ParseRules(cfg.Modules.Dependencies)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Reglas de dependencia: %v\n", err)
		os.Exit(1)
	}
	graph, err := module.NewGraph(module.DefaultDefinitions(), rules...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Grafo de módulos: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_module_catalog.sql")
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := postgres.WriteModuleCatalogSeed(out, graph); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir script: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d módulos, %d reglas\n", outPath, len(graph.Keys()), len(rules))
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
