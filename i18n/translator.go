package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for issue codes.
// data provides the values to embed in the message (for example "field",
// "got" or "type").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator. Templates use
// {name} placeholders filled from data.
type dictTranslator struct{ lang string }

var dicts = map[string]map[string]string{
	"en": {
		"required":           "Field {field} is not optional",
		"invalid_type":       "Field {field} expects type {type}, got {got}",
		"not_integer":        "Field {field} is expected to be an integer, got {got}",
		"overflow":           "Field {field} does not fit a 64-bit integer, got {got}",
		"unknown_field":      "Field {field} is not declared by {type}",
		"unset":              "Field {field} is not optional but was never set",
		"unknown_type":       "Unknown polymorphic type {type} for {registry}.Create",
		"envelope_empty":     "Envelope carries no type key",
		"envelope_ambiguous": "Envelope must carry exactly one type key, got {count}: {keys}",
		"duplicate_key":      "Key {key} is duplicated",
		"parse_error":        "Parse error: {detail}",
	},
	"ja": {
		"required":           "フィールド {field} は省略できません",
		"invalid_type":       "フィールド {field} は {type} 型が必要です (値: {got})",
		"not_integer":        "フィールド {field} は整数が必要です (値: {got})",
		"overflow":           "フィールド {field} は64ビット整数の範囲外です (値: {got})",
		"unknown_field":      "フィールド {field} は {type} に定義されていません",
		"unset":              "フィールド {field} は必須ですが未設定です",
		"unknown_type":       "{registry}.Create の未知の多態型 {type} です",
		"envelope_empty":     "エンベロープに型キーがありません",
		"envelope_ambiguous": "エンベロープの型キーは1つである必要があります ({count}個: {keys})",
		"duplicate_key":      "キー {key} が重複しています",
		"parse_error":        "解析エラー: {detail}",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := dicts[t.lang][code]
	if !ok {
		return code
	}
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := dicts[lang]; !ok {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
