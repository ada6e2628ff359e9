package menu

import (
	"strings"

	"github.com/jhoicas/Invorya-access-api/internal/domain/entity"
)

// ForRole construye el menú estático del rol con las rutas bajo el slug de la
// unidad de negocio. Siempre devuelve un árbol nuevo. Un rol desconocido solo
// recibe los ítems públicos.
func ForRole(role, businessUnitSlug string) []Node {
	p := pathPrefix(businessUnitSlug)

	switch strings.ToLower(strings.TrimSpace(role)) {
	case entity.RoleSuperAdmin:
		return join(public(p), catalog(p), sales(p), inventory(p), customers(p), finance(p), reports(p), administration(p), platform())
	case entity.RoleAdmin:
		return join(public(p), catalog(p), sales(p), inventory(p), customers(p), finance(p), reports(p), administration(p))
	case entity.RoleManager:
		return join(public(p), catalog(p), sales(p), inventory(p), customers(p), reports(p))
	case entity.RoleCashier:
		return join(public(p), sales(p), customers(p))
	case entity.RoleViewer:
		return join(public(p), reports(p))
	default:
		return public(p)
	}
}

func pathPrefix(slug string) func(string) string {
	slug = strings.Trim(slug, "/ ")
	return func(s string) string {
		if slug == "" {
			return s
		}
		return "/" + slug + s
	}
}

func join(sections ...[]Node) []Node {
	var out []Node
	for _, s := range sections {
		out = append(out, s...)
	}
	return out
}

func public(p func(string) string) []Node {
	return []Node{
		{Title: "Inicio", Path: p("/dashboard"), Icon: "home"},
		{Title: "Mi perfil", Path: "/profile", Icon: "user"},
	}
}

func catalog(p func(string) string) []Node {
	return []Node{{
		Title: "Catálogo", Icon: "box",
		Children: []Node{
			{Title: "Productos", Path: p("/catalog/products"), Resource: "product", Action: "read"},
			{Title: "Nuevo producto", Path: p("/catalog/products/new"), Resource: "product", Action: "create"},
			{Title: "Categorías", Path: p("/catalog/categories"), Resource: "category", Action: "read"},
			{Title: "Impuestos", Path: p("/catalog/taxes"), Resource: "tax", Action: "update"},
		},
	}}
}

func sales(p func(string) string) []Node {
	return []Node{{
		Title: "Ventas", Icon: "cart",
		Children: []Node{
			{Title: "Punto de venta", Path: p("/pos"), Resource: "sale", Action: "create"},
			{Title: "Pedidos", Path: p("/sales/orders"), Resource: "order", Action: "read"},
			{Title: "Facturas", Path: p("/sales/invoices"), Resource: "invoice", Action: "read"},
		},
	}}
}

func inventory(p func(string) string) []Node {
	return []Node{{
		Title: "Inventario", Icon: "warehouse",
		Children: []Node{
			{Title: "Existencias", Path: p("/inventory/stock"), Resource: "inventory", Action: "read"},
			{Title: "Movimientos", Path: p("/inventory/movements"), Resource: "inventory", Action: "create"},
			{Title: "Bodegas", Path: p("/inventory/warehouses"), Resource: "warehouse", Action: "read"},
		},
	}}
}

func customers(p func(string) string) []Node {
	return []Node{
		{Title: "Clientes", Path: p("/customers"), Icon: "users", Resource: "customer", Action: "read"},
	}
}

func finance(p func(string) string) []Node {
	return []Node{{
		Title: "Finanzas", Icon: "wallet",
		Children: []Node{
			{Title: "Cuentas por cobrar", Path: p("/finance/receivables"), Resource: "finance", Action: "read"},
			{Title: "Caja", Path: p("/finance/cash"), Resource: "cash_register", Action: "read"},
		},
	}}
}

func reports(p func(string) string) []Node {
	return []Node{{
		Title: "Reportes", Icon: "chart",
		Children: []Node{
			{Title: "Ventas", Path: p("/reports/sales"), Resource: "report", Action: "read"},
			{Title: "Inventario", Path: p("/reports/inventory"), Resource: "report", Action: "read"},
		},
	}}
}

func administration(p func(string) string) []Node {
	return []Node{{
		Title: "Administración", Icon: "settings",
		Children: []Node{
			{Title: "Usuarios", Path: p("/admin/users"), Resource: "user", Action: "read"},
			{Title: "Roles", Path: p("/admin/roles"), Resource: "role", Action: "read"},
			{Title: "Unidades de negocio", Path: "/admin/business-units", Resource: "business_unit", Action: "read"},
			{Title: "Módulos", Path: "/admin/settings/modules", Resource: "system_settings", Action: "read"},
			{Title: "Salud de permisos", Path: "/admin/permissions/health"},
		},
	}}
}

func platform() []Node {
	return []Node{{
		Title: "Plataforma", Icon: "cloud", Resource: "platform",
		Children: []Node{
			{Title: "Empresas", Path: "/platform/companies", Resource: "company", Action: "read"},
			{Title: "Módulos de plataforma", Path: "/platform/settings/modules", Resource: "system_settings", Action: "update"},
		},
	}}
}
