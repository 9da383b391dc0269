package optimizer_test

import (
	"github.com/razeghi71/chainsimp/ast"
	"github.com/razeghi71/chainsimp/canon"
	"github.com/razeghi71/chainsimp/engine"
	"github.com/razeghi71/chainsimp/internal/testutil"
	"github.com/razeghi71/chainsimp/optimizer"
	"github.com/razeghi71/chainsimp/parser"
	"github.com/razeghi71/chainsimp/printer"
	"github.com/razeghi71/chainsimp/stream"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func parse(src string) *ast.Chain {
	c, err := parser.Parse(src)
	Expect(err).NotTo(HaveOccurred())
	return c
}

func simplifyExpr(src string) string {
	m := parse("map{" + src + "}").Calls[0].(*ast.Map)
	return printer.Format(optimizer.SimplifyArith(m.Expr))
}

func simplifyCond(src string) string {
	f := parse("filter{" + src + "}").Calls[0].(*ast.Filter)
	return printer.Format(optimizer.SimplifyLogic(f.Cond))
}

func optimize(src string) string {
	return printer.Format(optimizer.Optimize(canon.Canonicalize(parse(src))))
}

var _ = Describe("Optimizer", func() {
	var inputs *stream.Stream

	BeforeEach(func() {
		inputs = stream.Range(-100, 100)
	})

	Context("arithmetic", func() {
		DescribeTable("simplifies",
			func(src, want string) {
				Expect(simplifyExpr(src)).To(Equal(want))
			},
			Entry("element plus element", "(element+element)", "(element*2)"),
			Entry("element minus element", "(element-element)", "0"),
			Entry("keeps the square", "(element*element)", "(element*element)"),
			Entry("folds constants", "(2*3)", "6"),
			Entry("folds a negative literal", "(2--3)", "5"),
			Entry("adds zero", "(element+0)", "element"),
			Entry("adds to zero", "(0+element)", "element"),
			Entry("multiplies by one", "(element*1)", "element"),
			Entry("multiplies by zero", "(element*0)", "0"),
			Entry("multiplies zero", "(0*element)", "0"),
			Entry("combines additions", "((element+3)+4)", "(element+7)"),
			Entry("combines a subtraction", "((element+3)-5)", "(element-2)"),
			Entry("cancels constants", "((element-3)+3)", "element"),
			Entry("keeps a negated element negated", "((10-element)+5)", "(15-element)"),
			Entry("subtracts a sum", "(10-(element+3))", "(7-element)"),
			Entry("subtracts a difference", "(10-(3-element))", "(element+7)"),
			Entry("distributes over addition", "((element+2)*3)", "((element*3)+6)"),
			Entry("merges factors", "((element*2)*3)", "(element*6)"),
			Entry("merges a leading factor", "(3*(element*2))", "(element*6)"),
			Entry("expands a difference of squares", "((element+3)*(element-3))", "((element*element)-9)"),
			Entry("expands a square", "((element+1)*(element+1))", "(((element*element)+(2*element))+1)"),
			Entry("expands scaled factors", "((element*2)*(element*3))", "(6*(element*element))"),
			Entry("expands a doubled element", "((element+element)*(element-1))", "((2*(element*element))-(2*element))"),
			Entry("expands a negated factor", "((3-element)*(element+2))", "(((-1*(element*element))+element)+6)"),
			Entry("leaves cubic products alone", "((element*element)*(element+1))", "((element*element)*(element+1))"),
		)

		It("keeps overflowing constants unfolded", func() {
			Expect(simplifyExpr("(9223372036854775807+1)")).To(Equal("(9223372036854775807+1)"))
			Expect(simplifyExpr("((element+9223372036854775807)+1)")).To(Equal("((element+9223372036854775807)+1)"))
		})
	})

	Context("comparisons", func() {
		DescribeTable("simplifies",
			func(src, want string) {
				Expect(simplifyCond(src)).To(Equal(want))
			},
			Entry("true constant comparison", "(2>1)", "(1=1)"),
			Entry("false constant comparison", "(2<1)", "(1=0)"),
			Entry("element equals itself", "(element=element)", "(1=1)"),
			Entry("element is never above itself", "(element>element)", "(1=0)"),
			Entry("moves an addend", "((element+3)>10)", "(element>7)"),
			Entry("moves an addend from the left", "(10<(element+3))", "(element>7)"),
			Entry("moves a subtrahend", "((element-3)=10)", "(element=13)"),
			Entry("flips a negated element", "((10-element)>3)", "(element<7)"),
			Entry("divides exactly", "((element*2)>10)", "(element>5)"),
			Entry("flips for a negative factor", "((element*-2)>10)", "(element<-5)"),
			Entry("keeps an inexact division", "((element*2)=7)", "((element*2)=7)"),
			Entry("square above a perfect square", "((element*element)>9)", "((element<-3)|(element>3))"),
			Entry("square below a perfect square", "((element*element)<9)", "((element>-3)&(element<3))"),
			Entry("square equal to a perfect square", "((element*element)=9)", "((element=-3)|(element=3))"),
			Entry("square equal to zero", "((element*element)=0)", "(element=0)"),
			Entry("square above a negative", "((element*element)>-1)", "(1=1)"),
			Entry("square below zero", "((element*element)<0)", "(1=0)"),
			Entry("square equal to a negative", "((element*element)=-4)", "(1=0)"),
			Entry("square above an imperfect square", "((element*element)>8)", "((element*element)>8)"),
			Entry("shifted square", "(((element*element)-4)>5)", "((element<-3)|(element>3))"),
			Entry("scaled sum", "(((element+1)*2)>10)", "(element>4)"),
		)
	})

	Context("logic", func() {
		DescribeTable("simplifies",
			func(src, want string) {
				Expect(simplifyCond(src)).To(Equal(want))
			},
			Entry("intersects upper bounds", "((element<10)&(element<20))", "(element<10)"),
			Entry("unions upper bounds", "((element<10)|(element<20))", "(element<20)"),
			Entry("disjoint equality", "((element<10)&(element=20))", "(1=0)"),
			Entry("intersects lower bounds", "((element>10)&(element>20))", "(element>20)"),
			Entry("unions lower bounds", "((element>10)|(element>20))", "(element>10)"),
			Entry("keeps a disjoint union", "((element>10)|(element<5))", "((element>10)|(element<5))"),
			Entry("duplicate relation", "((element=3)&(element=3))", "(element=3)"),
			Entry("conflicting relations", "((element=3)&(element>3))", "(1=0)"),
			Entry("keeps a touching union", "((element=3)|(element>3))", "((element=3)|(element>3))"),
			Entry("equality inside a bound", "((element<20)&(element=10))", "(element=10)"),
			Entry("equality above a bound", "((element=10)&(element>3))", "(element=10)"),
			Entry("equality above a reversed bound", "((3<element)&(element=10))", "(element=10)"),
			Entry("keeps a range", "((3<element)&(element<10))", "((3<element)&(element<10))"),
			Entry("false or x", "((1=0)|(element>2))", "(element>2)"),
			Entry("true and x", "((2>1)&(element>2))", "(element>2)"),
			Entry("x and false", "((element>2)&(1=0))", "(1=0)"),
			Entry("x or true", "((element>2)|(1=1))", "(1=1)"),
			Entry("absorbs around nested arithmetic", "(((element*element)>8)&(1=0))", "(1=0)"),
		)
	})

	Context("chains", func() {
		It("simplifies a shifted filter and expands the map", func() {
			Expect(optimize("map{(element+10)}%>%filter{(element>10)}%>%map{(element*element)}")).
				To(Equal("filter{(element>0)}%>%map{(((element*element)+(20*element))+100)}"))
		})

		It("rejects everything for an empty range", func() {
			got := optimizer.Optimize(canon.Canonicalize(parse("filter{(element>1)}%>%filter{(element<1)}")))
			Expect(printer.Format(got)).To(Equal(printer.Format(optimizer.RejectAll())))
			for _, x := range inputs.Values {
				_, ok := engine.Run(got, x)
				Expect(ok).To(BeFalse())
			}
		})

		It("drops the map behind an always false filter", func() {
			Expect(optimize("filter{(element>element)}%>%map{(element*3)}")).
				To(Equal("filter{(1=0)}%>%map{element}"))
		})

		It("does not change or share the input", func() {
			src := "filter{((element+1)>2)}%>%map{((element+3)*(element-3))}"
			c := parse(src)
			out := optimizer.Optimize(c)
			Expect(printer.Format(c)).To(Equal(src))

			out.Calls[0].(*ast.Filter).Cond.(*ast.Compare).Right.(*ast.Constant).Value = 99
			Expect(printer.Format(c)).To(Equal(src))
		})

		DescribeTable("agrees with the unoptimized chain",
			func(src string) {
				c := parse(src)
				canonical := canon.Canonicalize(c)
				optimized := optimizer.Optimize(canonical)
				Expect(engine.Compare(canonical, optimized, inputs)).To(BeNil())
				Expect(engine.Compare(c, optimized, inputs)).To(BeNil())
			},
			Entry(nil, "filter{(element<30)}%>%map{(element+-10)}%>%filter{(element>10)}%>%map{(element*element)}"),
			Entry(nil, "map{((element+3)*(element-3))}"),
			Entry(nil, "filter{(element>1)}%>%filter{(element<1)}"),
			Entry(nil, "map{(element*-2)}%>%filter{((element>4)|(element<-40))}%>%map{(element-1)}%>%filter{(element=-41)}"),
			Entry(nil, "map{(element*element)}%>%filter{(element<25)}%>%map{(3-element)}"),
			Entry(nil, "map{(element-5)}%>%filter{((element*element)=16)}"),
			Entry(nil, "filter{((10-element)>3)}%>%map{((element*2)*(element*3))}"),
		)
	})

	Context("random chains", func() {
		It("preserves behavior and is idempotent", func() {
			gen := testutil.NewGen(7)
			for i := 0; i < 300; i++ {
				c := gen.Chain(100)
				canonical := canon.Canonicalize(c)
				once := optimizer.Optimize(canonical)
				twice := optimizer.Optimize(once)

				m := engine.Compare(canonical, once, inputs)
				Expect(m).To(BeNil(), "%s optimized to %s", printer.Format(canonical), printer.Format(once))
				Expect(engine.Compare(once, twice, inputs)).To(BeNil())
				Expect(once.Calls).To(HaveLen(2))
			}
		})

		It("keeps always false filters rejecting with an identity map", func() {
			gen := testutil.NewGen(11)
			for i := 0; i < 100; i++ {
				c := ast.NewChain(&ast.Filter{Cond: ast.False()}, &ast.Map{Expr: gen.Arith(3)})
				out := optimizer.Optimize(c)
				Expect(printer.Format(out)).To(Equal("filter{(1=0)}%>%map{element}"))
				for _, x := range inputs.Values {
					_, ok := engine.Run(out, x)
					Expect(ok).To(BeFalse())
				}
			}
		})
	})
})
