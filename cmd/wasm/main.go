//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/cvaz1306/nexora/internal/engine"
)

var eng *engine.Engine

func main() {
	eng = engine.New(engine.DefaultOptions())

	// Create the engine API object
	nexoraEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	nexoraEngine.Set("loadSample", js.FuncOf(loadSample))
	nexoraEngine.Set("addNode", js.FuncOf(addNode))
	nexoraEngine.Set("connect", js.FuncOf(connect))
	nexoraEngine.Set("disconnect", js.FuncOf(disconnect))
	nexoraEngine.Set("removeNode", js.FuncOf(removeNode))
	nexoraEngine.Set("pointerDown", js.FuncOf(pointerDown))
	nexoraEngine.Set("pointerMove", js.FuncOf(pointerMove))
	nexoraEngine.Set("pointerUp", js.FuncOf(pointerUp))
	nexoraEngine.Set("pointerLeave", js.FuncOf(pointerLeave))
	nexoraEngine.Set("wheel", js.FuncOf(wheel))
	nexoraEngine.Set("panTo", js.FuncOf(panTo))
	nexoraEngine.Set("panBy", js.FuncOf(panBy))
	nexoraEngine.Set("setZoom", js.FuncOf(setZoom))
	nexoraEngine.Set("setSurfaceSize", js.FuncOf(setSurfaceSize))
	nexoraEngine.Set("setSelection", js.FuncOf(setSelection))
	nexoraEngine.Set("arrange", js.FuncOf(arrange))
	nexoraEngine.Set("clear", js.FuncOf(clear))
	nexoraEngine.Set("resetView", js.FuncOf(resetView))

	// --- Queries (frontend ← backend) ---
	nexoraEngine.Set("snapshot", js.FuncOf(snapshot))
	nexoraEngine.Set("getViewport", js.FuncOf(getViewport))
	nexoraEngine.Set("getSelection", js.FuncOf(getSelection))
	nexoraEngine.Set("getStageCenter", js.FuncOf(getStageCenter))

	// Register on global scope
	js.Global().Set("nexoraEngine", nexoraEngine)

	// Signal that WASM is ready
	js.Global().Set("nexoraWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command Handlers ---

func loadSample(this js.Value, args []js.Value) interface{} {
	engine.SeedSample(eng)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func addNode(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.ValueOf(map[string]interface{}{"error": "missing kind, x, y"})
	}

	kind := engine.NodeKind(args[0].String())
	x := args[1].Float()
	y := args[2].Float()

	var props json.RawMessage
	if len(args) > 3 && args[3].Type() == js.TypeString {
		props = json.RawMessage(args[3].String())
	}

	n := eng.AddNode(kind, x, y, props)
	return js.ValueOf(n.ID)
}

func connect(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}

	var fromHandle, toHandle engine.Handle
	if len(args) > 2 {
		fromHandle = engine.Handle(args[2].String())
	}
	if len(args) > 3 {
		toHandle = engine.Handle(args[3].String())
	}

	c := eng.AddConnection(args[0].String(), args[1].String(), fromHandle, toHandle)
	if c == nil {
		return js.ValueOf("")
	}
	return js.ValueOf(c.ID)
}

func disconnect(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(false)
	}
	return js.ValueOf(eng.RemoveConnection(args[0].String()))
}

func removeNode(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(false)
	}
	return js.ValueOf(eng.RemoveNode(args[0].String()))
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.PointerDown(args[0].Float(), args[1].Float())
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.PointerMove(args[0].Float(), args[1].Float())
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.PointerUp(args[0].Float(), args[1].Float())
	return nil
}

func pointerLeave(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.PointerLeave(args[0].Float(), args[1].Float())
	return nil
}

func wheel(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	eng.Wheel(args[0].Float(), args[1].Float(), args[2].Float())
	return nil
}

func panTo(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.PanTo(args[0].Float(), args[1].Float())
	return nil
}

func panBy(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.PanBy(args[0].Float(), args[1].Float())
	return nil
}

func setZoom(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	if len(args) >= 3 {
		eng.SetZoomAt(args[0].Float(), args[1].Float(), args[2].Float())
		return nil
	}
	eng.SetZoom(args[0].Float())
	return nil
}

func setSurfaceSize(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.SetSurfaceSize(args[0].Float(), args[1].Float())
	return nil
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeString {
		eng.SetSelectedNodeID("")
		return nil
	}
	eng.SetSelectedNodeID(args[0].String())
	return nil
}

func arrange(this js.Value, args []js.Value) interface{} {
	padding := -1.0 // engine substitutes its default
	if len(args) > 0 && args[0].Type() == js.TypeNumber {
		padding = args[0].Float()
	}
	eng.Arrange(padding)
	return nil
}

func clear(this js.Value, args []js.Value) interface{} {
	eng.Clear()
	return nil
}

func resetView(this js.Value, args []js.Value) interface{} {
	eng.ResetView()
	return nil
}

// --- Query Handlers ---

func snapshot(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.SnapshotJSON())
}

func getViewport(this js.Value, args []js.Value) interface{} {
	v := eng.GetViewport()
	return js.ValueOf(map[string]interface{}{
		"panX": v.PanX,
		"panY": v.PanY,
		"zoom": v.Zoom,
	})
}

func getSelection(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.SelectedNodeID())
}

func getStageCenter(this js.Value, args []js.Value) interface{} {
	p := eng.GetStageCenterOfScreen()
	if p == nil {
		return js.Null()
	}
	return js.ValueOf(map[string]interface{}{"x": p.X, "y": p.Y})
}
