package utils

import (
	"fmt"
	"go/parser"
	"go/token"
	"os"

	"golang.org/x/tools/imports"
)

// FormatGoSource formats generated Go source the way gofmt does, sorting
// imports but never adding or removing them
func FormatGoSource(filename string, source []byte) ([]byte, error) {
	formatted, err := imports.Process(filename, source, &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		if parseErr := ValidateGoCode(string(source)); parseErr != nil {
			return nil, fmt.Errorf("invalid Go syntax: %w", parseErr)
		}
		return nil, err
	}
	return formatted, nil
}

// ValidateGoCode checks if the provided code is valid Go syntax
func ValidateGoCode(code string) error {
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, "", code, parser.ParseComments)
	return err
}

// WriteFileIfChanged writes content to filename unless the file already holds
// exactly that content. It reports whether the file was written.
func WriteFileIfChanged(filename string, content []byte) (bool, error) {
	if existing, err := os.ReadFile(filename); err == nil && string(existing) == string(content) {
		return false, nil
	}
	if err := os.WriteFile(filename, content, 0644); err != nil {
		return false, err
	}
	return true, nil
}
