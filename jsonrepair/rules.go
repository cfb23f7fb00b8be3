package jsonrepair

// Rule identifies a recovery rule applied while repairing.
type Rule int

// Recovery rules.
const (
	RuleQuoteKey Rule = iota + 1
	RuleNormalizeQuotes
	RuleRemoveTrailingComma
	RuleRemoveComma
	RuleCloseBracket
	RuleInsertComma
	RuleInsertColon
	RuleInsertNull
	RuleStripComment
	RuleStripCodeFence
	RuleMapLiteral
	RuleNormalizeNumber
	RuleQuoteValue
	RuleConcatStrings
	RuleEscapeControl
	RuleKeepInvalidEscape
	RuleCloseString
	RuleRemoveBracket
	RuleWrapValues
	RuleFallback
)

var ruleNames = map[Rule]string{
	RuleQuoteKey:            "quote_key",
	RuleNormalizeQuotes:     "normalize_quotes",
	RuleRemoveTrailingComma: "remove_trailing_comma",
	RuleRemoveComma:         "remove_comma",
	RuleCloseBracket:        "close_bracket",
	RuleInsertComma:         "insert_comma",
	RuleInsertColon:         "insert_colon",
	RuleInsertNull:          "insert_null",
	RuleStripComment:        "strip_comment",
	RuleStripCodeFence:      "strip_code_fence",
	RuleMapLiteral:          "map_literal",
	RuleNormalizeNumber:     "normalize_number",
	RuleQuoteValue:          "quote_value",
	RuleConcatStrings:       "concat_strings",
	RuleEscapeControl:       "escape_control",
	RuleKeepInvalidEscape:   "keep_invalid_escape",
	RuleCloseString:         "close_string",
	RuleRemoveBracket:       "remove_bracket",
	RuleWrapValues:          "wrap_values",
	RuleFallback:            "fallback",
}

// String returns the snake_case name of the rule.
func (r Rule) String() string {
	if name, ok := ruleNames[r]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (r Rule) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// literalValues maps bare words to the JSON literal they stand for.
var literalValues = map[string]string{
	"true":      "true",
	"True":      "true",
	"TRUE":      "true",
	"false":     "false",
	"False":     "false",
	"FALSE":     "false",
	"null":      "null",
	"None":      "null",
	"NULL":      "null",
	"Null":      "null",
	"nil":       "null",
	"undefined": "null",
	"NaN":       "null",
	"Infinity":  "null",
	"+Infinity": "null",
	"-Infinity": "null",
}
