package pegmatch

import "fmt"

// Push pushes `value` onto the value stack
func Push(value any) Action {
	return func(ctx *MatcherContext) (bool, error) {
		ctx.ValueStack().Push(value)
		return true, nil
	}
}

// PushMatch pushes the text matched by the preceding rule
func PushMatch() Action {
	return func(ctx *MatcherContext) (bool, error) {
		ctx.ValueStack().Push(ctx.Match())
		return true, nil
	}
}

// PushValue pushes what `fn` computes out of the text matched by the
// preceding rule.  An error from `fn` fails the action.
func PushValue[T any](fn func(match string) (T, error)) Action {
	return func(ctx *MatcherContext) (bool, error) {
		v, err := fn(ctx.Match())
		if err != nil {
			return false, err
		}
		ctx.ValueStack().Push(v)
		return true, nil
	}
}

// Pop removes the top of the value stack.  It fails when the stack
// is empty.
func Pop() Action {
	return func(ctx *MatcherContext) (bool, error) {
		if _, err := ctx.ValueStack().Pop(); err != nil {
			return false, err
		}
		return true, nil
	}
}

// Drop removes the top `n` values of the stack
func Drop(n int) Action {
	return func(ctx *MatcherContext) (bool, error) {
		for i := 0; i < n; i++ {
			if _, err := ctx.ValueStack().Pop(); err != nil {
				return false, fmt.Errorf("drop %d: %w", n, err)
			}
		}
		return true, nil
	}
}

func Dup() Action {
	return func(ctx *MatcherContext) (bool, error) {
		return true, ctx.ValueStack().Dup()
	}
}

func Swap() Action {
	return func(ctx *MatcherContext) (bool, error) {
		return true, ctx.ValueStack().Swap()
	}
}

// Reduce pops the top two values, `b` then `a`, and pushes
// `fn(a, b)`
func Reduce(fn func(a, b any) (any, error)) Action {
	return func(ctx *MatcherContext) (bool, error) {
		stack := ctx.ValueStack()
		b, err := stack.Pop()
		if err != nil {
			return false, err
		}
		a, err := stack.Pop()
		if err != nil {
			return false, err
		}
		v, err := fn(a, b)
		if err != nil {
			return false, err
		}
		stack.Push(v)
		return true, nil
	}
}

// Check turns a boolean test into an action
func Check(test func(ctx *MatcherContext) bool) Action {
	return func(ctx *MatcherContext) (bool, error) {
		return test(ctx), nil
	}
}
