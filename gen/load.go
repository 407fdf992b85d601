package main

import (
	"go/types"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/tools/go/packages"
)

func parsePackage(pattern string) (*types.Package, error) {
	pkg, err := loadPackage(pattern, packages.NeedName|packages.NeedTypes)
	if err != nil {
		return nil, err
	}
	if pkg.Types == nil {
		return nil, errors.Errorf("type information not available for %s", pattern)
	}
	return pkg.Types, nil
}

// resolvePackage returns the import path and name of the package in dir.
func resolvePackage(dir string) (string, string, error) {
	if dir == "" {
		dir = "."
	}
	pkg, err := loadPackage(dir, packages.NeedName)
	if err != nil {
		return "", "", err
	}
	return pkg.PkgPath, pkg.Name, nil
}

func loadPackage(pattern string, mode packages.LoadMode) (*packages.Package, error) {
	pkgs, err := packages.Load(&packages.Config{Mode: mode}, pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", pattern)
	}
	if len(pkgs) != 1 {
		return nil, errors.Errorf("%s: want one package, found %d", pattern, len(pkgs))
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, errors.Errorf("%s: %v", pattern, pkg.Errors[0])
	}
	return pkg, nil
}

func parseProxyOptions(options []string) map[string]string {
	names := make(map[string]string, len(options))
	for _, option := range options {
		splited := strings.Split(option, "->")
		ifaceName := splited[0]
		var proxyName string
		if len(splited) == 2 {
			proxyName = splited[1]
		}
		names[ifaceName] = proxyName
	}
	return names
}

func findProxiesToGenerate(pkg *types.Package, options map[string]string) ([]proxyConfig, error) {
	ifaces := findNamedInterfaces(pkg)
	proxies := make([]proxyConfig, 0, len(ifaces))
	if len(options) == 0 {
		for ifaceName, iface := range ifaces {
			if !interceptable(iface) {
				continue
			}
			proxies = append(proxies, proxyConfig{
				IfaceName: ifaceName,
				Iface:     iface,
				ProxyName: ifaceName + "Proxy",
			})
		}
	} else {
		for ifaceName, proxyName := range options {
			iface, found := ifaces[ifaceName]
			if !found {
				return nil, errors.Errorf("interface='%s' not found", ifaceName)
			}
			if proxyName == "" {
				proxyName = ifaceName + "Proxy"
			}
			proxies = append(proxies, proxyConfig{
				IfaceName: ifaceName,
				Iface:     iface,
				ProxyName: proxyName,
			})
		}
	}
	sort.Slice(proxies, func(i, j int) bool {
		return proxies[i].IfaceName < proxies[j].IfaceName
	})
	return proxies, nil
}

func findNamedInterfaces(pkg *types.Package) map[string]*types.Interface {
	items := map[string]*types.Interface{}
	pkgScope := pkg.Scope()
	for _, name := range pkgScope.Names() {
		obj, ok := pkgScope.Lookup(name).(*types.TypeName)
		if !ok || obj.IsAlias() {
			continue
		}
		named, ok := obj.Type().(*types.Named)
		if !ok || named.TypeParams().Len() > 0 {
			continue
		}
		iface, ok := named.Underlying().(*types.Interface)
		if !ok || iface.NumMethods() == 0 || !iface.IsMethodSet() {
			continue
		}
		items[name] = iface
	}
	return items
}

func interceptable(iface *types.Interface) bool {
	for i := 0; i < iface.NumMethods(); i++ {
		if !iface.Method(i).Exported() {
			return false
		}
	}
	return true
}
