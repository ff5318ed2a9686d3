//go:build js && wasm

package main

import (
	"bytes"
	"image/png"
	"syscall/js"

	"thermalcam/pkg/session"
	"thermalcam/pkg/thermal"
)

// pipeline keeps the smoothing window between calls, so consecutive frames
// from the same stream must go through it in order.
var pipeline = thermal.NewPipeline()

func main() {
	js.Global().Set("renderThermal", js.FuncOf(renderThermal))
	js.Global().Set("resetThermal", js.FuncOf(resetThermal))
	select {} // block forever
}

// renderThermal(frameBytes, contrast, paletteName) processes one raw capture
// and returns the composed PNG with the frame statistics.
func renderThermal(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("usage: renderThermal(frameBytes, contrast, palette)")
	}

	jsBytes := args[0]
	raw := make([]byte, jsBytes.Get("length").Int())
	js.CopyBytesToGo(raw, jsBytes)

	contrast := session.NewContrast(session.DefaultContrast)
	if len(args) >= 2 && args[1].Type() == js.TypeNumber {
		contrast = session.NewContrast(args[1].Float())
	}

	palette := thermal.Inferno
	if len(args) >= 3 && args[2].Type() == js.TypeString {
		p, ok := thermal.ParsePalette(args[2].String())
		if !ok {
			return errorResult("unknown palette: " + args[2].String())
		}
		palette = p
	}

	a, img, err := pipeline.Process(raw, contrast.Value(), palette)
	if err != nil {
		return errorResult(err.Error())
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return errorResult("PNG encode error: " + err.Error())
	}
	pngBytes := buf.Bytes()
	uint8Array := js.Global().Get("Uint8Array").New(len(pngBytes))
	js.CopyBytesToJS(uint8Array, pngBytes)

	return js.ValueOf(map[string]interface{}{
		"png":     uint8Array,
		"width":   img.Bounds().Dx(),
		"height":  img.Bounds().Dy(),
		"palette": palette.String(),
		"min":     float64(a.Min),
		"max":     float64(a.Max),
		"hot":     map[string]interface{}{"x": a.Hot.X, "y": a.Hot.Y},
		"cold":    map[string]interface{}{"x": a.Cold.X, "y": a.Cold.Y},
	})
}

func resetThermal(this js.Value, args []js.Value) interface{} {
	pipeline.Reset()
	return js.Undefined()
}

func errorResult(msg string) interface{} {
	return js.ValueOf(map[string]interface{}{
		"error": msg,
	})
}
