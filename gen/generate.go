package main

import (
	"bytes"
	"fmt"
	"go/types"

	"github.com/dave/jennifer/jen"
	"github.com/pkg/errors"
)

const runtimePath = "github.com/CherkashinEvgeny/gointercept"

type config struct {
	DstPkgName     string
	DstPackagePath string
	SrcPkg         *types.Package
	Proxies        []proxyConfig
}

type proxyConfig struct {
	IfaceName string
	Iface     *types.Interface
	ProxyName string
}

func generate(cfg config) (string, error) {
	f := jen.NewFilePathName(cfg.DstPackagePath, cfg.DstPkgName)
	f.HeaderComment("Code generated by gointercept-gen. DO NOT EDIT.")
	f.ImportAlias(runtimePath, "gointercept")
	for _, proxy := range cfg.Proxies {
		err := generateProxy(f, cfg.SrcPkg, proxy)
		if err != nil {
			return "", errors.Wrapf(err, "interface %s", proxy.IfaceName)
		}
	}
	buf := &bytes.Buffer{}
	err := f.Render(buf)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func generateProxy(f *jen.File, srcPkg *types.Package, proxy proxyConfig) error {
	iface := jen.Qual(srcPkg.Path(), proxy.IfaceName)
	ctor := "New" + proxy.ProxyName

	f.Line()
	f.Commentf("%s routes every %s call to an interceptor.", proxy.ProxyName, proxy.IfaceName)
	f.Type().Id(proxy.ProxyName).Struct(
		jen.Id("Interceptor").Qual(runtimePath, "Interceptor"),
	)
	f.Line()
	f.Func().Id(ctor).Params(jen.Id("interceptor").Qual(runtimePath, "Interceptor")).Add(iface.Clone()).Block(
		jen.Return(jen.Id(proxy.ProxyName).Values(jen.Dict{
			jen.Id("Interceptor"): jen.Id("interceptor"),
		})),
	)
	f.Line()
	f.Func().Id("init").Params().Block(
		jen.Qual(runtimePath, "Register").Index(iface.Clone()).Call(jen.Id(ctor)),
	)

	for i := 0; i < proxy.Iface.NumMethods(); i++ {
		fn := proxy.Iface.Method(i)
		if !fn.Exported() {
			return errors.Errorf("method %s is unexported", fn.Name())
		}
		f.Line()
		generateMethod(f, proxy.ProxyName, fn)
	}
	return nil
}

func generateMethod(f *jen.File, proxyName string, fn *types.Func) {
	sig := fn.Type().(*types.Signature)
	names := paramNames(sig)

	params := make([]jen.Code, 0, sig.Params().Len())
	args := []jen.Code{jen.Lit(fn.Name())}
	for i := 0; i < sig.Params().Len(); i++ {
		p := sig.Params().At(i)
		if sig.Variadic() && i == sig.Params().Len()-1 {
			params = append(params, jen.Id(names[i]).Op("...").Add(typeCode(p.Type().(*types.Slice).Elem())))
		} else {
			params = append(params, jen.Id(names[i]).Add(typeCode(p.Type())))
		}
		args = append(args, jen.Id(names[i]))
	}

	decl := f.Func().Params(jen.Id("p").Id(proxyName)).Id(fn.Name()).Params(params...)
	if results := resultsCode(sig.Results()); results != nil {
		decl.Add(results)
	}

	if elem, ok := futureElem(sig); ok {
		decl.Block(suspendingBody(elem, args)...)
		return
	}
	decl.Block(directBody(sig, args)...)
}

func suspendingBody(elem types.Type, args []jen.Code) []jen.Code {
	resumeArgs := append([]jen.Code{args[0], jen.Id("promise")}, args[1:]...)
	return []jen.Code{
		jen.Id("promise").Op(":=").Qual(runtimePath, "NewPromise").Index(typeCode(elem)).Call(),
		jen.Id("p").Dot("Interceptor").Dot("InterceptSuspending").Call(resumeArgs...),
		jen.Return(jen.Id("promise").Dot("Future").Call()),
	}
}

func directBody(sig *types.Signature, args []jen.Code) []jen.Code {
	results := sig.Results()
	n := results.Len()
	hasErr := n > 0 && isError(results.At(n-1).Type())
	if hasErr {
		n--
	}
	call := jen.Id("p").Dot("Interceptor").Dot("InterceptDirect").Call(args...)

	var body []jen.Code
	switch n {
	case 0:
		if hasErr {
			return []jen.Code{
				jen.List(jen.Id("_"), jen.Id("err")).Op(":=").Add(call),
				jen.Return(jen.Id("err")),
			}
		}
		return []jen.Code{
			jen.If(jen.List(jen.Id("_"), jen.Id("err")).Op(":=").Add(call), jen.Id("err").Op("!=").Nil()).Block(
				jen.Panic(jen.Id("err")),
			),
		}
	case 1:
		body = append(body,
			jen.List(jen.Id("out"), jen.Id("err")).Op(":=").Add(call),
			jen.List(jen.Id("r0"), jen.Id("_")).Op(":=").Id("out").Assert(typeCode(results.At(0).Type())),
		)
	default:
		body = append(body, jen.List(jen.Id("out"), jen.Id("err")).Op(":=").Add(call))
		assigns := make([]jen.Code, 0, n)
		for i := 0; i < n; i++ {
			r := fmt.Sprintf("r%d", i)
			body = append(body, jen.Var().Id(r).Add(typeCode(results.At(i).Type())))
			assigns = append(assigns,
				jen.List(jen.Id(r), jen.Id("_")).Op("=").Id("outs").Index(jen.Lit(i)).Assert(typeCode(results.At(i).Type())),
			)
		}
		body = append(body, jen.If(
			jen.List(jen.Id("outs"), jen.Id("ok")).Op(":=").Id("out").Assert(jen.Index().Id("any")),
			jen.Id("ok").Op("&&").Len(jen.Id("outs")).Op("==").Lit(n),
		).Block(assigns...))
	}

	values := make([]jen.Code, 0, n+1)
	for i := 0; i < n; i++ {
		values = append(values, jen.Id(fmt.Sprintf("r%d", i)))
	}
	if hasErr {
		values = append(values, jen.Id("err"))
	} else {
		body = append(body, jen.If(jen.Id("err").Op("!=").Nil()).Block(jen.Panic(jen.Id("err"))))
	}
	return append(body, jen.Return(values...))
}

// paramNames picks parameter names that cannot shadow the locals and packages generated code uses.
func paramNames(sig *types.Signature) []string {
	reserved := map[string]bool{
		"p": true, "out": true, "outs": true, "ok": true, "err": true, "promise": true, "gointercept": true,
	}
	for i := 0; i < sig.Results().Len(); i++ {
		reserved[fmt.Sprintf("r%d", i)] = true
	}
	collectPackageNames(sig, reserved)

	names := make([]string, sig.Params().Len())
	for i := range names {
		name := sig.Params().At(i).Name()
		if name == "" || name == "_" || reserved[name] {
			name = fmt.Sprintf("arg%d", i)
		}
		reserved[name] = true
		names[i] = name
	}
	return names
}

func collectPackageNames(sig *types.Signature, into map[string]bool) {
	qualifier := func(pkg *types.Package) string {
		into[pkg.Name()] = true
		return pkg.Name()
	}
	_ = types.TypeString(sig, qualifier)
}

func futureElem(sig *types.Signature) (types.Type, bool) {
	if sig.Results().Len() != 1 {
		return nil, false
	}
	t := types.Unalias(sig.Results().At(0).Type())
	if named, ok := t.(*types.Named); ok && isRuntimeType(named, "Future") {
		return named.TypeArgs().At(0), true
	}
	if ch, ok := t.(*types.Chan); ok && ch.Dir() == types.RecvOnly {
		if named, ok := types.Unalias(ch.Elem()).(*types.Named); ok && isRuntimeType(named, "Result") {
			return named.TypeArgs().At(0), true
		}
	}
	return nil, false
}

func isRuntimeType(named *types.Named, name string) bool {
	obj := named.Obj()
	return obj.Name() == name && obj.Pkg() != nil && obj.Pkg().Path() == runtimePath && named.TypeArgs().Len() == 1
}

func isError(t types.Type) bool {
	return types.Identical(t, types.Universe.Lookup("error").Type())
}

func resultsCode(results *types.Tuple) jen.Code {
	codes := tupleCodes(results, false)
	switch len(codes) {
	case 0:
		return nil
	case 1:
		return codes[0]
	default:
		return jen.Parens(jen.List(codes...))
	}
}

func tupleCodes(tuple *types.Tuple, variadic bool) []jen.Code {
	codes := make([]jen.Code, 0, tuple.Len())
	for i := 0; i < tuple.Len(); i++ {
		t := tuple.At(i).Type()
		if variadic && i == tuple.Len()-1 {
			codes = append(codes, jen.Op("...").Add(typeCode(t.(*types.Slice).Elem())))
			continue
		}
		codes = append(codes, typeCode(t))
	}
	return codes
}

// typeCode renders a type with package qualifiers resolved by jen.
func typeCode(t types.Type) *jen.Statement {
	switch t := t.(type) {
	case *types.Basic:
		if t.Kind() == types.UnsafePointer {
			return jen.Qual("unsafe", "Pointer")
		}
		return jen.Id(t.Name())
	case *types.Alias:
		return objectCode(t.Obj(), t.TypeArgs())
	case *types.Named:
		return objectCode(t.Obj(), t.TypeArgs())
	case *types.TypeParam:
		return jen.Id(t.Obj().Name())
	case *types.Pointer:
		return jen.Op("*").Add(typeCode(t.Elem()))
	case *types.Slice:
		return jen.Index().Add(typeCode(t.Elem()))
	case *types.Array:
		return jen.Index(jen.Lit(int(t.Len()))).Add(typeCode(t.Elem()))
	case *types.Map:
		return jen.Map(typeCode(t.Key())).Add(typeCode(t.Elem()))
	case *types.Chan:
		switch t.Dir() {
		case types.SendOnly:
			return jen.Chan().Op("<-").Add(typeCode(t.Elem()))
		case types.RecvOnly:
			return jen.Op("<-").Chan().Add(typeCode(t.Elem()))
		default:
			return jen.Chan().Add(typeCode(t.Elem()))
		}
	case *types.Signature:
		s := jen.Func().Params(tupleCodes(t.Params(), t.Variadic())...)
		if results := resultsCode(t.Results()); results != nil {
			s.Add(results)
		}
		return s
	case *types.Interface:
		methods := make([]jen.Code, 0, t.NumExplicitMethods())
		for i := 0; i < t.NumExplicitMethods(); i++ {
			m := t.ExplicitMethod(i)
			sig := m.Type().(*types.Signature)
			method := jen.Id(m.Name()).Params(tupleCodes(sig.Params(), sig.Variadic())...)
			if results := resultsCode(sig.Results()); results != nil {
				method.Add(results)
			}
			methods = append(methods, method)
		}
		for i := 0; i < t.NumEmbeddeds(); i++ {
			methods = append(methods, typeCode(t.EmbeddedType(i)))
		}
		return jen.Interface(methods...)
	case *types.Struct:
		fields := make([]jen.Code, 0, t.NumFields())
		for i := 0; i < t.NumFields(); i++ {
			field := t.Field(i)
			if field.Embedded() {
				fields = append(fields, typeCode(field.Type()))
				continue
			}
			fields = append(fields, jen.Id(field.Name()).Add(typeCode(field.Type())))
		}
		return jen.Struct(fields...)
	default:
		return jen.Id(t.String())
	}
}

func objectCode(obj *types.TypeName, args *types.TypeList) *jen.Statement {
	var s *jen.Statement
	if obj.Pkg() == nil {
		s = jen.Id(obj.Name())
	} else {
		s = jen.Qual(obj.Pkg().Path(), obj.Name())
	}
	if args.Len() == 0 {
		return s
	}
	codes := make([]jen.Code, args.Len())
	for i := 0; i < args.Len(); i++ {
		codes[i] = typeCode(args.At(i))
	}
	return s.Index(jen.List(codes...))
}
