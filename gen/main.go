package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var (
	dstPkgFlag     = flag.String("pkg", "", "Package name of generated code")
	dstPkgPathFlag = flag.String("path", "", "Package path of generated code")
	dstFileFlag    = flag.String("file", "", "Output file path")
	configFlag     = flag.String("config", "", "TOML file with generator settings")
	verbosityFlag  = flag.Int("v", 0, "Log verbosity")
)

func logger() commonlog.Logger {
	return commonlog.GetLogger("gointercept.gen")
}

func main() {
	flag.Usage = printUsage
	flag.Parse()
	commonlog.Configure(*verbosityFlag, nil)
	os.Exit(run(os.Stdout))
}

func run(stdout io.Writer) int {
	dstPkgName, dstPkgPath, dstFile, args := *dstPkgFlag, *dstPkgPathFlag, *dstFileFlag, flag.Args()
	if *configFlag != "" {
		fileCfg, err := loadFileConfig(*configFlag)
		if err != nil {
			printError("failed to load config", err)
			return 1
		}
		dstPkgName, dstPkgPath, dstFile, args = fileCfg.merge(dstPkgName, dstPkgPath, dstFile, args)
	}
	if len(args) < 1 {
		printInvalidArgumentError("source package is missing")
		return 2
	}
	srcPkgArg := args[0]
	if srcPkgArg == "" {
		printInvalidArgumentError("source package is empty")
		return 2
	}

	srcPkg, err := parsePackage(srcPkgArg)
	if err != nil {
		printError("failed to parse package", err)
		return 1
	}
	if dstPkgPath == "" && dstFile != "" {
		var name string
		dstPkgPath, name, err = resolvePackage(filepath.Dir(dstFile))
		if err != nil {
			printWarning(fmt.Sprintf("failed to resolve destination package path, using '%s'", srcPkg.Path()), err)
			dstPkgPath = srcPkg.Path()
		} else if dstPkgName == "" {
			dstPkgName = name
		}
	}
	if dstPkgPath == "" {
		dstPkgPath = srcPkg.Path()
	}
	if dstPkgName == "" {
		if dstPkgPath == srcPkg.Path() {
			dstPkgName = srcPkg.Name()
		} else if _, dstPkgName, err = resolvePackage(dstPkgPath); err != nil {
			printWarning(fmt.Sprintf("failed to resolve destination package name, using %s", srcPkg.Name()), err)
			dstPkgName = srcPkg.Name()
		}
	}

	options := parseProxyOptions(args[1:])
	proxies, err := findProxiesToGenerate(srcPkg, options)
	if err != nil {
		printError("failed to find interfaces to generate", err)
		return 1
	}
	logger().Infof("generating %d stand-ins for %s into %s", len(proxies), srcPkg.Path(), dstPkgPath)

	code, err := generate(config{
		DstPkgName:     dstPkgName,
		DstPackagePath: dstPkgPath,
		SrcPkg:         srcPkg,
		Proxies:        proxies,
	})
	if err != nil {
		printError("failed to generate code", err)
		return 1
	}

	out := stdout
	if dstFile != "" {
		file, err := os.OpenFile(dstFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			printError("open file", err)
			return 1
		}
		defer func() {
			_ = file.Close()
		}()
		out = file
	}
	_, err = io.WriteString(out, code)
	if err != nil {
		printError("write code", err)
		return 1
	}
	return 0
}

const usage = `gointercept-gen -pkg=[destination package name] -path=[destination package path] -file=[output file path] -config=[config file] [source package] [interfaces]...
	[destination package name] - Package name of generated code. If empty, source package name will be used.
	[destination package path] - Package path of generated code. If empty, source package path will be used.
	[output file path]         - Path to output file. If empty, stdout will be used.
	[config file]              - TOML file providing any of the settings above. Command line values win.
	[source package]           - Package path for which stand-ins will be generated.
	[interfaces]               - List of interface names, optionally renamed with Name->ProxyName. If empty, stand-ins will be generated for each interface in package.`

func printUsage() {
	fmt.Printf("%s\n", usage)
}

func printInvalidArgumentError(err string) {
	fmt.Printf("%s\n\n%s\n", err, usage)
}

func printWarning(description string, err error) {
	logger().Warningf("%s: %s", description, err.Error())
}

func printError(description string, err error) {
	logger().Errorf("%s: %s", description, err.Error())
	fmt.Fprintf(os.Stderr, "ERROR: %s\n\t%v\n", description, err)
}
