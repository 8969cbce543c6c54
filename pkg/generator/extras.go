package generator

import (
	"strconv"
	"strings"
)

// extras is the decoded free-form data attached to a recipe or inventory
// item, e.g. "enchanted,#FF0000" or "skin=<texture>,durability=40".
type extras struct {
	Enchanted  bool
	Color      string
	Trim       string
	Skin       string
	Durability *int
}

func parseExtras(data string) extras {
	var e extras
	for _, token := range strings.Split(data, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		key, value, hasValue := strings.Cut(token, "=")
		switch lower := strings.ToLower(key); {
		case !hasValue && (lower == "enchant" || lower == "enchanted" || lower == "glint"):
			e.Enchanted = true
		case hasValue && lower == "skin":
			e.Skin = value
		case hasValue && lower == "trim":
			e.Trim = strings.ToLower(value)
		case hasValue && lower == "color":
			e.Color = value
		case hasValue && lower == "durability":
			if n, err := strconv.Atoi(value); err == nil {
				e.Durability = &n
			}
		case !hasValue && strings.HasPrefix(token, "#"):
			e.Color = token
		case !hasValue:
			if n, err := strconv.Atoi(token); err == nil {
				e.Durability = &n
			} else if e.Color == "" {
				e.Color = token
			}
		}
	}
	return e
}
