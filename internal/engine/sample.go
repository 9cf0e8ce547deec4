package engine

import "encoding/json"

// SeedSample populates an empty engine with a small demo board: three
// text nodes and an image node linked into a chain. Used by the
// playground and the wasm shell so first-time users see something.
func SeedSample(e *Engine) {
	welcome := e.AddNode(NodeKindText, 80, 80, json.RawMessage(`{"text":"Welcome to the board"}`))
	ideas := e.AddNode(NodeKindText, 360, 60, json.RawMessage(`{"text":"Drag me around"}`))
	notes := e.AddNode(NodeKindText, 120, 320, json.RawMessage(`{"text":"Connect handles to link nodes"}`))
	logo := e.AddNode(NodeKindImage, 420, 300, json.RawMessage(`{"url":"/static/logo.png","width":180,"height":120}`))

	e.AddConnection(welcome.ID, ideas.ID, HandleRight, HandleLeft)
	e.AddConnection(welcome.ID, notes.ID, HandleBottom, HandleTop)
	e.AddConnection(notes.ID, logo.ID, HandleRight, HandleLeft)
}
