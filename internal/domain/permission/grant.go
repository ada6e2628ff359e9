// Package permission decide la visibilidad de ítems de menú a partir de los
// permisos efectivos del usuario. Es filtrado de interfaz, no una frontera de
// seguridad: el backend vuelve a autorizar cada operación.
package permission

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Grant es un permiso en alguna de sus formas. Conjunto cerrado:
// StringGrant, ObjectGrant o MalformedGrant.
type Grant interface {
	grant()
}

// StringGrant es la forma plana: "product", "product:create", "product_create" o "*".
type StringGrant string

// ObjectGrant es la forma estructurada {resource, action}.
type ObjectGrant struct {
	Resource string `json:"resource"`
	Action   string `json:"action,omitempty"`
}

// MalformedGrant conserva una entrada que no tiene ninguna de las formas
// soportadas. Nunca otorga acceso y no cuenta en las métricas.
type MalformedGrant struct {
	Raw json.RawMessage
}

func (StringGrant) grant()    {}
func (ObjectGrant) grant()    {}
func (MalformedGrant) grant() {}

// Grants es la lista de permisos de un usuario tal como llega del almacén
// (JSONB) o del token. El orden no importa y se toleran duplicados.
type Grants []Grant

// UnmarshalJSON decodifica cada elemento según su primer byte: cadena, objeto
// con "resource" de tipo cadena, o entrada malformada. Nunca falla por un
// elemento individual; solo falla si el valor no es un arreglo.
func (g *Grants) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*g = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("permission: se esperaba un arreglo de permisos: %w", err)
	}
	out := make(Grants, 0, len(raw))
	for _, item := range raw {
		out = append(out, decodeGrant(item))
	}
	*g = out
	return nil
}

// MarshalJSON serializa cada permiso en su forma original.
func (g Grants) MarshalJSON() ([]byte, error) {
	if g == nil {
		return []byte("null"), nil
	}
	items := make([]json.RawMessage, 0, len(g))
	for _, gr := range g {
		var (
			b   []byte
			err error
		)
		switch v := gr.(type) {
		case StringGrant:
			b, err = json.Marshal(string(v))
		case ObjectGrant:
			b, err = json.Marshal(v)
		case MalformedGrant:
			b = v.Raw
			if len(b) == 0 {
				b = []byte("null")
			}
		default:
			b = []byte("null")
		}
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return json.Marshal(items)
}

func decodeGrant(item json.RawMessage) Grant {
	trimmed := bytes.TrimSpace(item)
	if len(trimmed) == 0 {
		return MalformedGrant{Raw: item}
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return MalformedGrant{Raw: item}
		}
		return StringGrant(s)
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return MalformedGrant{Raw: item}
		}
		resource, ok := rawString(obj["resource"])
		if !ok {
			return MalformedGrant{Raw: item}
		}
		action, _ := rawString(obj["action"])
		return ObjectGrant{Resource: resource, Action: action}
	default:
		return MalformedGrant{Raw: item}
	}
}

func rawString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Strings construye una lista de permisos planos; útil para tokens y pruebas.
func Strings(values ...string) Grants {
	out := make(Grants, 0, len(values))
	for _, v := range values {
		out = append(out, StringGrant(v))
	}
	return out
}
