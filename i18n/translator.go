package i18n

// Translator retrieves localized messages for ParseError codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "field").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "type_mismatch":
			if data["expected"] != "" {
				return data["expected"] + " が必要ですが " + data["got"] + " でした"
			}
			return "型が不正です"
		case "missing_field":
			if data["field"] != "" {
				return "必須フィールド \"" + data["field"] + "\" が不足しています"
			}
			return "必須フィールドが不足しています"
		case "unknown_fields":
			if data["fields"] != "" {
				return "未知のフィールドです: " + data["fields"]
			}
			return "未知のフィールドです"
		case "invalid_value":
			return "値が不正です"
		case "duplicate_key":
			if data["key"] != "" {
				return "キー \"" + data["key"] + "\" が重複しています"
			}
			return "キーが重複しています"
		case "parse_error":
			return "解析エラー"
		case "max_depth":
			return "ネストが深すぎます"
		}
	default: // "en"
		switch code {
		case "type_mismatch":
			if data["expected"] != "" {
				return "expected " + data["expected"] + ", got " + data["got"]
			}
			return "type mismatch"
		case "missing_field":
			if data["field"] != "" {
				return "missing required field \"" + data["field"] + "\""
			}
			return "missing required field"
		case "unknown_fields":
			if data["fields"] != "" {
				return "unknown fields: " + data["fields"]
			}
			return "unknown fields"
		case "invalid_value":
			return "invalid value"
		case "duplicate_key":
			if data["key"] != "" {
				return "duplicate key \"" + data["key"] + "\""
			}
			return "duplicate key"
		case "parse_error":
			return "parse error"
		case "max_depth":
			return "maximum nesting depth exceeded"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
