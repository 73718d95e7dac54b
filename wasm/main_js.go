//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"

	"github.com/meshplace/hxa/go/api"
	"github.com/meshplace/hxa/go/hxa"
)

func bytesArg(v js.Value) []byte {
	buf := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(buf, v)
	return buf
}

func toJS(out []byte) any {
	uint8arr := js.Global().Get("Uint8Array").New(len(out))
	js.CopyBytesToJS(uint8arr, out)
	return uint8arr
}

func hxa2txt(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing hxa bytes")
	}
	out, err := api.HXAToTXT(bytesArg(args[0]))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return js.ValueOf(out)
}

func hxa2glb(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing hxa bytes")
	}
	out, err := api.HXAToGLB(bytesArg(args[0]))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toJS(out)
}

func upgradeHxa(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing hxa bytes")
	}
	target := uint32(hxa.Version)
	if len(args) > 1 {
		target = uint32(args[1].Int())
	}
	out, err := api.UpgradeHXA(bytesArg(args[0]), target)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return toJS(out)
}

func digestHxa(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing hxa bytes")
	}
	d, err := api.DigestHXA(bytesArg(args[0]))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return js.ValueOf(fmt.Sprintf("%016x", d))
}

func main() {
	js.Global().Set("hxa2txt", js.FuncOf(hxa2txt))
	js.Global().Set("hxa2glb", js.FuncOf(hxa2glb))
	js.Global().Set("upgradeHxa", js.FuncOf(upgradeHxa))
	js.Global().Set("digestHxa", js.FuncOf(digestHxa))
	select {}
}
