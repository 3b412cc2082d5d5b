package ifc

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ============================================================
// STEP Encoder (ISO 10303-21)
// ============================================================

// EncodeSTEP сериализует модель в текст SPF: заголовок с
// метаданными приложения и секция DATA — по одной записи на
// экземпляр в порядке регистрации.
func EncodeSTEP(m *Model) string {
	var sb strings.Builder
	cred := m.Credentials

	sb.WriteString("ISO-10303-21;\n")
	sb.WriteString("HEADER;\n")
	sb.WriteString("FILE_DESCRIPTION((''),'2;1');\n")
	fmt.Fprintf(&sb, "FILE_NAME(%s,%s,(%s),(%s),%s,%s,'');\n",
		quote(m.FileName()),
		quote(time.Now().UTC().Format("2006-01-02T15:04:05")),
		quote(strings.TrimSpace(cred.EditorsGivenName+" "+cred.EditorsFamilyName)),
		quote(cred.EditorsOrganisationName),
		quote(cred.DevelopersName),
		quote(strings.TrimSpace(cred.ApplicationName+" "+cred.ApplicationVersion)),
	)
	fmt.Fprintf(&sb, "FILE_SCHEMA((%s));\n", quote(m.Schema))
	sb.WriteString("ENDSEC;\n")
	sb.WriteString("DATA;\n")

	for _, inst := range m.Instances() {
		fmt.Fprintf(&sb, "#%d=%s(%s);\n", inst.ID(), inst.StepType(), encodeArgs(inst.StepArgs()))
	}

	sb.WriteString("ENDSEC;\n")
	sb.WriteString("END-ISO-10303-21;\n")
	return sb.String()
}

func encodeArgs(args []any) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = encodeValue(arg)
	}
	return strings.Join(parts, ",")
}

func encodeValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "$"
	case omitted:
		return "*"
	case Enum:
		return "." + string(val) + "."
	case string:
		return quote(val)
	case bool:
		if val {
			return ".T."
		}
		return ".F."
	case int:
		return strconv.Itoa(val)
	case float64:
		return real64(val)
	case []float64:
		parts := make([]string, len(val))
		for i, f := range val {
			parts[i] = real64(f)
		}
		return "(" + strings.Join(parts, ",") + ")"
	case []string:
		parts := make([]string, len(val))
		for i, s := range val {
			parts[i] = quote(s)
		}
		return "(" + strings.Join(parts, ",") + ")"
	case []Instance:
		parts := make([]string, len(val))
		for i, inst := range val {
			parts[i] = "#" + strconv.Itoa(inst.ID())
		}
		return "(" + strings.Join(parts, ",") + ")"
	case Instance:
		return "#" + strconv.Itoa(val.ID())
	default:
		return "$"
	}
}

// real64 — REAL обязан содержать точку.
func real64(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += "."
	}
	return s
}

// quote экранирует апострофы удвоением.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
