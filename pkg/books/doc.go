/*
Package books is a small illustrative domain for the history engine.

A Factory prints Books from the texts of a ports.Library and tracks them by identity.
A Desk wraps the factory with the editing workflow the history expects: every
mutation is preceded by flagging the book and recording a checkpoint, so that undo
restores the text as it was before the edit.

	lib := memory.NewLibrary(map[string]string{"poem": "Roses are red, violets are blue.."})
	factory := books.NewFactory(lib)
	eng, _ := rewind.New(factory, rewind.WithCapacity(10))
	desk := books.NewDesk(factory, eng)

	poem, _ := desk.Print("poem")
	_ = desk.Append(poem.ID(), "..I hate coding")
	_ = eng.PerformUndo() // text is back to the library version
*/
package books
