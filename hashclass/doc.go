// Package hashclass implements a small class-based scripting language whose
// classes support private fields, methods and accessors with brand checks.
//
// A private identifier such as #x names a per-evaluation token rather than
// a string key: evaluating the same class source twice yields classes that
// cannot read each other's private state. Instances carry a brand set,
// recording which classes' private methods they may receive, and a private
// field store keyed by token identity.
//
// Typical use:
//
//	engine := hashclass.MustNewEngine(hashclass.Config{})
//	script, err := engine.Compile(source)
//	if err != nil {
//		// *SyntaxError values joined with errors.Join
//	}
//	result, err := script.Run(ctx, hashclass.CallOptions{})
//
// Runtime failures are *RuntimeError values; ErrorType classifies any error
// the engine returns.
package hashclass
