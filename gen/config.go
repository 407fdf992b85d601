package main

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// fileConfig is the optional TOML file passed with -config.
//
//	package    = "github.com/acme/shop/store"
//	interfaces = ["Store", "Cache->CacheStandIn"]
//	output     = "store/store_proxy.go"
//	pkg        = "store"
//	path       = "github.com/acme/shop/store"
type fileConfig struct {
	Package    string   `toml:"package"`
	Interfaces []string `toml:"interfaces"`
	Output     string   `toml:"output"`
	Pkg        string   `toml:"pkg"`
	Path       string   `toml:"path"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "decode %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.Errorf("%s: unknown key '%s'", path, undecoded[0].String())
	}
	return cfg, nil
}

// merge fills settings not given on the command line from the file.
func (c fileConfig) merge(pkg, pkgPath, file string, args []string) (string, string, string, []string) {
	if pkg == "" {
		pkg = c.Pkg
	}
	if pkgPath == "" {
		pkgPath = c.Path
	}
	if file == "" {
		file = c.Output
	}
	if len(args) == 0 && c.Package != "" {
		args = append([]string{c.Package}, c.Interfaces...)
	}
	return pkg, pkgPath, file, args
}
