package models

import (
	"go/ast"

	"github.com/toyz/autoinject/internal/annotations"
)

// Candidate is a type declaration that syntactically carries at least one
// annotation. Nothing about it has been resolved yet.
type Candidate struct {
	Spec        *ast.TypeSpec                   // the annotated type spec
	File        *ast.File                       // file the spec was found in
	Annotations []*annotations.ParsedAnnotation // annotation lines, in source order
}

// Name returns the declared identifier of the candidate
func (c *Candidate) Name() string {
	return c.Spec.Name.Name
}
