// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import (
	"fmt"

	"nickandperla.net/lambdacalc/internal/lambda"
)

// value is one of *closure, native, thunk, int or bool.
type value any

type closure struct {
	nullary bool
	body    code
	env     *frame
}

// native is a host function of one argument.
type native func(value) value

// thunk is a host function of no arguments.
type thunk func() value

// frame binds one parameter; variables are resolved to a frame depth at
// compile time.
type frame struct {
	val value
	up  *frame
}

type code func(env *frame) value

var successor native = func(v value) value {
	n, ok := v.(int)
	if !ok {
		panic(errorf("successor applied to %s", describe(v)))
	}
	return n + 1
}

// compile translates t in a scope whose innermost binder is last.
func compile(t lambda.Term, scope []string) code {
	switch t := t.(type) {
	case lambda.Var:
		return compileVar(t.Name, scope)
	case lambda.Abs:
		if t.Nullary() {
			body := compile(t.Body, scope)
			return func(env *frame) value {
				return &closure{nullary: true, body: body, env: env}
			}
		}
		inner := make([]string, len(scope)+1)
		copy(inner, scope)
		inner[len(scope)] = t.Param
		body := compile(t.Body, inner)
		return func(env *frame) value {
			return &closure{body: body, env: env}
		}
	case lambda.App:
		fun := compile(t.Fun, scope)
		if t.Arg == nil {
			return func(env *frame) value {
				return call(fun(env))
			}
		}
		arg := compile(t.Arg, scope)
		return func(env *frame) value {
			f := fun(env)
			return apply(f, arg(env))
		}
	}
	panic(fmt.Sprintf("eval: unknown term %T", t))
}

func compileVar(name string, scope []string) code {
	depth := -1
	for i := len(scope) - 1; i >= 0; i-- {
		if scope[i] == name {
			depth = len(scope) - 1 - i
			break
		}
	}
	switch depth {
	case -1:
		return func(*frame) value {
			panic(errorf("name %q is not defined", name))
		}
	case 0:
		return func(env *frame) value { return env.val }
	case 1:
		return func(env *frame) value { return env.up.val }
	case 2:
		return func(env *frame) value { return env.up.up.val }
	}
	return func(env *frame) value {
		for i := 0; i < depth; i++ {
			env = env.up
		}
		return env.val
	}
}

func apply(f, arg value) value {
	switch f := f.(type) {
	case *closure:
		if f.nullary {
			panic(errorf("function takes no argument but was given %s", describe(arg)))
		}
		return f.body(&frame{val: arg, up: f.env})
	case native:
		return f(arg)
	case thunk:
		panic(errorf("function takes no argument but was given %s", describe(arg)))
	}
	panic(errorf("%s is not a function", describe(f)))
}

func call(f value) value {
	switch f := f.(type) {
	case *closure:
		if !f.nullary {
			panic(errorf("function called without its argument"))
		}
		return f.body(f.env)
	case thunk:
		return f()
	case native:
		panic(errorf("function called without its argument"))
	}
	panic(errorf("%s is not a function", describe(f)))
}

func describe(v value) string {
	switch v := v.(type) {
	case *closure, native, thunk:
		return "a function"
	case int:
		return fmt.Sprintf("the number %d", v)
	case bool:
		return fmt.Sprintf("the boolean %t", v)
	case nil:
		return "nothing"
	}
	return fmt.Sprintf("%T", v)
}
