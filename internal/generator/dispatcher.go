package generator

import (
	"fmt"
	"go/types"

	"github.com/toyz/autoinject/internal/container"
	"github.com/toyz/autoinject/internal/models"
	"github.com/toyz/autoinject/internal/templates"
)

// Dispatcher turns one target into one registration fragment. A false result
// with a nil error means the target has no strategy and is skipped.
type Dispatcher interface {
	Dispatch(target models.Target, imports *templates.ImportManager) (models.Fragment, bool, error)
}

// Strategy is one of the six registration shapes: a lifetime, either plain
// or bound to an abstraction
type Strategy struct {
	Lifetime models.Lifetime
	Bound    bool
	Method   string
}

// Name returns a short strategy name such as "Singleton" or "SingletonAs"
func (s Strategy) Name() string {
	if s.Bound {
		return s.Lifetime.String() + "As"
	}
	return s.Lifetime.String()
}

// SelectStrategy picks the strategy for the metadata. Lifetimes other than
// the three defined ones have no strategy.
func SelectStrategy(meta models.MarkerMetadata) (Strategy, bool) {
	method, ok := container.RegistrationMethod(meta.Lifetime)
	if !ok {
		return Strategy{}, false
	}
	return Strategy{Lifetime: meta.Lifetime, Bound: meta.HasAbstraction(), Method: method}, true
}

// StrategyDispatcher renders fragments for godi. It holds no state, so the
// same target always renders the same statement.
type StrategyDispatcher struct{}

// Dispatch implements Dispatcher
func (StrategyDispatcher) Dispatch(target models.Target, imports *templates.ImportManager) (models.Fragment, bool, error) {
	strategy, ok := SelectStrategy(target.Metadata)
	if !ok {
		return models.Fragment{}, false, nil
	}

	data := templates.RegistrationData{
		Method:      strategy.Method,
		Constructor: constructorExpr(target.Symbol, imports),
		Container:   imports.AddImport(container.PackagePath, container.PackageName),
		BindOption:  container.BindOption,
		Fmt:         imports.AddImport("fmt", "fmt"),
		TypeName:    target.Name(),
		Collection:  templates.CollectionParam,
		Err:         templates.ErrVar,
	}
	if strategy.Bound {
		data.Abstraction = imports.TypeString(target.Metadata.Abstraction)
	}

	statement, err := templates.Execute(templates.RegistrationTemplate, data)
	if err != nil {
		return models.Fragment{}, false, fmt.Errorf("render %s registration for %s: %w", strategy.Name(), target.Name(), err)
	}

	return models.Fragment{Target: target, Statement: statement}, true, nil
}

// constructorExpr returns the constructor handed to the container: New<T>
// when the package declares a usable one, otherwise a closure returning a
// zero *T
func constructorExpr(sym *types.TypeName, imports *templates.ImportManager) string {
	if fn, ok := findConstructor(sym); ok {
		return imports.ObjectString(fn)
	}
	name := imports.ObjectString(sym)
	return fmt.Sprintf("func() *%s { return new(%s) }", name, name)
}

// findConstructor looks up New<T> next to T. It must be a non-generic
// function whose first result is T or *T.
func findConstructor(sym *types.TypeName) (*types.Func, bool) {
	if sym.Pkg() == nil {
		return nil, false
	}
	fn, ok := sym.Pkg().Scope().Lookup("New" + sym.Name()).(*types.Func)
	if !ok {
		return nil, false
	}
	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.TypeParams().Len() > 0 || sig.Results().Len() == 0 {
		return nil, false
	}

	result := sig.Results().At(0).Type()
	if ptr, ok := result.(*types.Pointer); ok {
		result = ptr.Elem()
	}
	named, ok := types.Unalias(result).(*types.Named)
	return fn, ok && named.Obj() == sym
}
