package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "mime" or "field"), taken verbatim from the issuing Issue's Params.
type Translator interface {
	Message(code string, data map[string]any) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]any) string {
	switch t.lang {
	case "ja":
		switch code {
		case "malformed_json":
			return "JSON の構文が不正です"
		case "invalid_magic":
			return "バイナリコンテナのマジック値が不正です"
		case "unsupported_version":
			return "サポートされていないコンテナバージョンです"
		case "length_mismatch":
			return "宣言された長さが入力と一致しません"
		case "truncated_chunk":
			return "チャンクがコンテナ範囲を超えています"
		case "missing_required_chunk":
			return "必須の JSON チャンクがありません"
		case "image_decode_failure":
			return "画像のデコードに失敗しました"
		case "unknown_image_mime_type":
			return "未知の画像 MIME タイプです"
		case "external_uri_unresolved":
			return "外部 URI を解決できません"
		case "unknown_enum_name":
			return "未知の列挙名です"
		case "lossy_numeric_coercion":
			return "数値の変換が非可逆です"
		case "unexpected_json_shape":
			return "想定外の JSON 形状です"
		case "out_of_range_index":
			return "範囲外のインデックスです"
		case "mesh_decompression_failure":
			return "メッシュ解凍に失敗しました"
		case "unknown_extension_critical":
			return "重要な未知の拡張です"
		}
	default: // "en"
		switch code {
		case "malformed_json":
			return "malformed JSON"
		case "invalid_magic":
			return "invalid binary container magic"
		case "unsupported_version":
			return "unsupported container version"
		case "length_mismatch":
			return "declared length does not match input"
		case "truncated_chunk":
			return "chunk extends past the container"
		case "missing_required_chunk":
			return "missing required JSON chunk"
		case "image_decode_failure":
			return "image decode failed"
		case "unknown_image_mime_type":
			return "unknown image MIME type"
		case "external_uri_unresolved":
			return "external URI could not be resolved"
		case "unknown_enum_name":
			return "unknown enum name"
		case "lossy_numeric_coercion":
			return "lossy numeric coercion"
		case "unexpected_json_shape":
			return "unexpected JSON shape"
		case "out_of_range_index":
			return "out-of-range index"
		case "mesh_decompression_failure":
			return "mesh decompression failed"
		case "unknown_extension_critical":
			return "unknown extension in critical list"
		}
	}
	if mime, ok := data["mime"]; ok {
		if s, ok := mime.(string); ok && s != "" {
			return code + ": " + s
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
func T(code string, data map[string]any) string { return currentTranslator.Message(code, data) }
