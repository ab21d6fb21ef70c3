package service

import (
	"FileNest/internal/model"
	"strings"
)

// NormalizeTag приводит тег к канонической форме: убирает ведущие "#",
// многословный ввод склеивает в camelCase, однословный опускает в нижний
// регистр, и возвращает с префиксом "#". Пустой ввод даёт пустую строку.
func NormalizeTag(raw string) string {
	tag := strings.TrimSpace(raw)
	if tag == "" {
		return ""
	}
	tag = strings.TrimLeft(tag, "#")
	if tag == "" {
		return ""
	}

	words := strings.Fields(tag)
	if len(words) > 1 {
		var b strings.Builder
		for i, w := range words {
			w = strings.ToLower(w)
			if i == 0 {
				b.WriteString(w)
				continue
			}
			b.WriteString(strings.ToUpper(w[:1]))
			b.WriteString(w[1:])
		}
		tag = b.String()
	} else {
		tag = strings.ToLower(tag)
	}
	return "#" + tag
}

// SplitTags разбирает пользовательский ввод: строка с "#" трактуется как
// несколько тегов, без "#" — как один (возможно многословный) тег.
func SplitTags(input string) []string {
	var raw []string
	if strings.Contains(input, "#") {
		raw = strings.Split(input, "#")
	} else {
		raw = []string{input}
	}

	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if t := NormalizeTag(r); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// MergeTags добавляет к существующему списку новые теги из ввода:
// дубли отбрасываются, список обрезается до model.MaxNoteTags.
func MergeTags(existing []string, input string) []string {
	out := make([]string, 0, len(existing))
	out = append(out, existing...)

	for _, t := range SplitTags(input) {
		if len(out) >= model.MaxNoteTags {
			break
		}
		if containsTag(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// NormalizeTags нормализует готовый список тегов (create/update целиком).
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, raw := range tags {
		for _, t := range SplitTags(raw) {
			if len(out) >= model.MaxNoteTags {
				return out
			}
			if !containsTag(out, t) {
				out = append(out, t)
			}
		}
	}
	return out
}

func containsTag(tags []string, t string) bool {
	for _, v := range tags {
		if v == t {
			return true
		}
	}
	return false
}
