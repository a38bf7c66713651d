// Package parser finds annotated type declarations and resolves their
// registration metadata.
package parser

import (
	"context"
	"go/ast"
	"go/token"

	"github.com/toyz/autoinject/internal/annotations"
	"github.com/toyz/autoinject/internal/models"
)

// Scanner collects type declarations that carry annotation comments. It works
// on syntax only and never consults type information.
type Scanner struct {
	parser *annotations.Parser
}

// NewScanner creates a new declaration scanner
func NewScanner() *Scanner {
	return &Scanner{parser: annotations.NewParser()}
}

// Scan returns every top-level type spec with at least one annotation line,
// in file order and then source order. Comment lines that start with '@' but
// do not follow the annotation grammar are ignored.
func (s *Scanner) Scan(ctx context.Context, fset *token.FileSet, files []*ast.File) ([]*models.Candidate, error) {
	var candidates []*models.Candidate

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				found := s.extract(fset, docFor(gen, typeSpec))
				if len(found) == 0 {
					continue
				}
				candidates = append(candidates, &models.Candidate{
					Spec:        typeSpec,
					File:        file,
					Annotations: found,
				})
			}
		}
	}

	return candidates, nil
}

// docFor returns the doc comment attached to a type spec. The declaration's
// comment belongs to the spec only when the declaration is not grouped.
func docFor(gen *ast.GenDecl, spec *ast.TypeSpec) *ast.CommentGroup {
	if spec.Doc != nil {
		return spec.Doc
	}
	if !gen.Lparen.IsValid() {
		return gen.Doc
	}
	return nil
}

func (s *Scanner) extract(fset *token.FileSet, doc *ast.CommentGroup) []*annotations.ParsedAnnotation {
	if doc == nil {
		return nil
	}

	var found []*annotations.ParsedAnnotation
	for _, comment := range doc.List {
		if !annotations.IsAnnotationComment(comment.Text) {
			continue
		}

		pos := fset.Position(comment.Pos())
		location := annotations.SourceLocation{File: pos.Filename, Line: pos.Line, Column: pos.Column}

		parsed, err := s.parser.ParseAnnotation(comment.Text, location)
		if err != nil {
			continue
		}
		found = append(found, parsed)
	}
	return found
}
