package series

import (
	"fmt"
	"sort"

	"golang.org/x/text/language"
)

// Labels maps a category id to its resolved display label
type Labels map[string]string

// Put records a label for id unless one is already present
// first-seen wins: a later document cannot override an earlier label
func (l Labels) Put(id string, label any) {
	if id == "" {
		return
	}
	if _, ok := l[id]; ok {
		return
	}
	l[id] = ResolveLabel(label, id)
}

// ResolveLabel picks a single display string from a raw label value.
// Preference order: a plain string as-is, then the best English match
// among language-keyed variants, then the lexicographically first
// variant, then a stringified non-string label, then the raw id
func ResolveLabel(label any, id string) string {
	switch v := label.(type) {
	case nil:
		return id
	case string:
		if v == "" {
			return id
		}
		return v
	case map[string]any:
		if s := pickVariant(v); s != "" {
			return s
		}
		return id
	default:
		return fmt.Sprint(v)
	}
}

// pickVariant selects one language variant from a code-keyed mapping
func pickVariant(variants map[string]any) string {
	if len(variants) == 0 {
		return ""
	}
	codes := make([]string, 0, len(variants))
	for code := range variants {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	tags := make([]language.Tag, 0, len(codes))
	kept := make([]string, 0, len(codes))
	for _, code := range codes {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		kept = append(kept, code)
	}
	if len(tags) > 0 {
		m := language.NewMatcher(tags)
		if _, idx, conf := m.Match(language.English); conf >= language.High {
			if s, ok := variants[kept[idx]].(string); ok && s != "" {
				return s
			}
		}
	}
	// no usable English variant; take the first code in sorted order
	for _, code := range codes {
		if s, ok := variants[code].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
