package i18n

// Translator retrieves localized labels for error codes.
type Translator interface {
	Label(code string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Label(code string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "filename":
			return "ファイル名エラー"
		case "grammar":
			return "構文エラー"
		case "reserved_name":
			return "予約済みの名前です"
		case "duplicate_definition":
			return "重複した定義です"
		case "required":
			return "必須プロパティが不足しています"
		case "unknown_property":
			return "未知のプロパティです"
		case "invalid_value":
			return "値が不正です"
		case "unknown_id":
			return "未知のIDです"
		case "duplicate_scene":
			return "シーンIDが重複しています"
		}
	default: // "en"
		switch code {
		case "filename":
			return "filename error"
		case "grammar":
			return "grammar error"
		case "reserved_name":
			return "reserved name"
		case "duplicate_definition":
			return "duplicate definition"
		case "required":
			return "missing required property"
		case "unknown_property":
			return "unknown property"
		case "invalid_value":
			return "invalid value"
		case "unknown_id":
			return "unknown id"
		case "duplicate_scene":
			return "duplicate scene"
		}
	}
	return code
}

// New returns the built-in Translator for lang ("en"/"ja"); other values
// fall back to English.
func New(lang string) Translator {
	if lang != "ja" {
		lang = "en"
	}
	return dictTranslator{lang: lang}
}
