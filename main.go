//go:build !(js && wasm)

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"

	"github.com/meshplace/hxa/go/api"
	"github.com/meshplace/hxa/go/hxa"
	"github.com/meshplace/hxa/go/utils"
)

func usage() {
	fmt.Println("Usage: hxatool <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  hxa2txt input.hxa [output.txt]      (dump a decoded .hxa as text; colored on a terminal)")
	fmt.Println("  hxa2glb input.hxa output.glb        (convert geometry nodes to a .glb)")
	fmt.Println("  upgrade input.hxa output.hxa [ver]  (raise the file's format version, default 3)")
	fmt.Println("  validate input.hxa                  (check layer conventions beyond structural decoding)")
	fmt.Println("  digest input.hxa                    (print the xxhash64 of the canonical encoding)")
	fmt.Println("  gencube output.hxa                  (write a unit-cube sample file)")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "hxa2txt":
		if len(os.Args) != 3 && len(os.Args) != 4 {
			usage()
			os.Exit(1)
		}
		out := ""
		if len(os.Args) == 4 {
			out = os.Args[3]
		}
		colorize := out == "" && isatty.IsTerminal(os.Stdout.Fd())
		if err := utils.RunHXA2TXT(os.Args[2], out, colorize); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "hxa2glb":
		if len(os.Args) != 4 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunHXA2GLB(os.Args[2], os.Args[3]); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "upgrade":
		if len(os.Args) != 4 && len(os.Args) != 5 {
			usage()
			os.Exit(1)
		}
		target := uint64(hxa.Version)
		if len(os.Args) == 5 {
			var err error
			target, err = strconv.ParseUint(os.Args[4], 10, 32)
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
		}
		if err := utils.RunUpgradeHXA(os.Args[2], os.Args[3], uint32(target)); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "validate":
		if len(os.Args) != 3 {
			usage()
			os.Exit(1)
		}
		f, err := hxa.Load(os.Args[2])
		if err == nil {
			err = hxa.Validate(f)
		}
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Println("OK")
	case "digest":
		if len(os.Args) != 3 {
			usage()
			os.Exit(1)
		}
		data, err := os.ReadFile(os.Args[2])
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		d, err := api.DigestHXA(data)
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Printf("%016x  %s\n", d, os.Args[2])
	case "gencube":
		if len(os.Args) != 3 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunGenCube(os.Args[2]); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(1)
	}
}
