package main

import (
	"flag"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/widget"
)

// Minimal sanity check that a Fyne window opens on this machine before
// debugging the full viewer.
func main() {
	stay := flag.Bool("stay", false, "Keep the window open instead of closing after 5s")
	flag.Parse()
	fmt.Println("[fyneprobe] starting minimal Fyne app")
	a := app.New()
	w := a.NewWindow("Fyne Probe")
	msg := "Minimal Fyne window - will close in 5s"
	if *stay {
		msg = "Minimal Fyne window"
	}
	w.SetContent(widget.NewLabel(msg))
	if !*stay {
		go func() {
			time.Sleep(5 * time.Second)
			fmt.Println("[fyneprobe] closing window via fyne.Do")
			fyne.Do(func() { w.Close() })
		}()
	}
	w.ShowAndRun()
	fmt.Println("[fyneprobe] exited cleanly")
}
