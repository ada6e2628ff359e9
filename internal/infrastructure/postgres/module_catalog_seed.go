package postgres

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/Invorya-access-api/internal/domain/module"
)

// WriteModuleCatalogSeed escribe el script que sincroniza module_catalog con
// el grafo: nombre, obligatoriedad, requeridos directos y precio mensual.
func WriteModuleCatalogSeed(w io.Writer, g *module.Graph) error {
	defs := g.Definitions()
	if len(defs) == 0 {
		return fmt.Errorf("seed: el catálogo está vacío")
	}
	bw := bufio.NewWriter(w)
	bw.WriteString("-- Catálogo de módulos SaaS\n")
	bw.WriteString("-- Generado por cmd/seed_modules; no editar a mano.\n\n")
	bw.WriteString("INSERT INTO module_catalog (key, name, mandatory, requires, monthly_price) VALUES\n")
	for i, d := range defs {
		sep := ","
		if i == len(defs)-1 {
			sep = ""
		}
		fmt.Fprintf(bw, "  ('%s', '%s', %t, %s, %s)%s\n",
			escapeSQL(string(d.Key)), escapeSQL(d.Name), d.Mandatory,
			textArray(g.Requirements(d.Key)), d.MonthlyPrice.StringFixed(2), sep)
	}
	bw.WriteString("ON CONFLICT (key) DO UPDATE SET\n")
	bw.WriteString("  name          = EXCLUDED.name,\n")
	bw.WriteString("  mandatory     = EXCLUDED.mandatory,\n")
	bw.WriteString("  requires      = EXCLUDED.requires,\n")
	bw.WriteString("  monthly_price = EXCLUDED.monthly_price;\n")
	return bw.Flush()
}

func textArray(keys []module.Key) string {
	if len(keys) == 0 {
		return "'{}'"
	}
	quoted := make([]string, 0, len(keys))
	for _, k := range keys {
		quoted = append(quoted, `"`+escapeSQL(string(k))+`"`)
	}
	return "'{" + strings.Join(quoted, ",") + "}'"
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
