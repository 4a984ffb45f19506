package domain

import "strings"

// CodeClass says which table a mod code was found in.
type CodeClass string

// Available code classes.
const (
	// CodeClassLight is a light vehicle modification code.
	CodeClassLight CodeClass = "light"

	// CodeClassHeavy is a heavy vehicle modification code.
	CodeClassHeavy CodeClass = "heavy"

	// CodeClassUnknown means the code is in neither table.
	CodeClassUnknown CodeClass = "unknown"
)

// String returns the string representation.
func (c CodeClass) String() string {
	return string(c)
}

// Description returns a human-readable description of the class.
func (c CodeClass) Description() string {
	switch c {
	case CodeClassLight:
		return "Light vehicle mod code"
	case CodeClassHeavy:
		return "Heavy vehicle mod code fitted"
	default:
		return "Unknown code"
	}
}

// NormaliseCode upper-cases and trims a mod code.
func NormaliseCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ModCode is one entry from a mod-code table.
type ModCode struct {
	Code  string    `json:"code"`
	Title string    `json:"title"`
	Class CodeClass `json:"class"`
}

// ModCodeTables holds the light and heavy code tables keyed by normalised code.
type ModCodeTables struct {
	Light map[string]string
	Heavy map[string]string
}

// Lookup resolves a single code. Heavy wins over light.
func (t ModCodeTables) Lookup(code string) ModCode {
	code = NormaliseCode(code)
	if title, ok := t.Heavy[code]; ok {
		return ModCode{Code: code, Title: title, Class: CodeClassHeavy}
	}
	if title, ok := t.Light[code]; ok {
		return ModCode{Code: code, Title: title, Class: CodeClassLight}
	}
	return ModCode{Code: code, Class: CodeClassUnknown}
}

// Merged returns every known code with heavy titles overriding light ones.
func (t ModCodeTables) Merged() map[string]ModCode {
	merged := make(map[string]ModCode, len(t.Light)+len(t.Heavy))
	for code, title := range t.Light {
		merged[code] = ModCode{Code: code, Title: title, Class: CodeClassLight}
	}
	for code, title := range t.Heavy {
		merged[code] = ModCode{Code: code, Title: title, Class: CodeClassHeavy}
	}
	return merged
}

// Len returns the number of distinct codes across both tables.
func (t ModCodeTables) Len() int {
	return len(t.Merged())
}
