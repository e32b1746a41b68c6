// Package expect checks the structure of parsed C# source from tests.
//
// An expectation wraps one declaration of a syntax.File and exposes chained
// predicates. Navigation predicates take optional callbacks that receive the
// child expectation:
//
//	expect.Source(t, src).
//		HasUsing("System").
//		HasClass("Order", func(c *expect.ClassExpectations) {
//			c.IsPublic().IsSealed().
//				HasProperty("Id", func(p *expect.PropertyExpectations) {
//					p.HasType("int").IsAutoProperty()
//				})
//		})
//
// Every expectation of one tree shares a reporter. In FailFast mode (the
// default) the first failure calls Errorf and FailNow and the rest of the
// tree goes quiet. In Accumulate mode failures are collected until Verify.
package expect
