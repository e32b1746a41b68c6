// Package codebuilder assembles C# source text with fluent builders.
//
// Every builder validates its input at the call that supplies it: a blank
// name, a duplicate parameter or a conflicting setter panics with an error
// marked errors.ErrInvalidArgument or errors.ErrInvalidOperation. Use Catch to
// turn those panics into errors when the configuration comes from user data.
//
// Build is idempotent and never mutates the builder.
//
//	src := codebuilder.NewNamespace("Acme.Models").
//		AddUsing("System").
//		AddType(codebuilder.NewClass("Customer").
//			MakeSealed().
//			AddProperty(codebuilder.NewProperty("Name", "string").WithInitSetter())).
//		Build()
package codebuilder
