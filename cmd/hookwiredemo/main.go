// Command hookwiredemo loads a declarative hotkey program, installs it as
// a hookwire.Engine, and exposes a tray icon plus a WebSocket debug
// console that broadcasts each firing of the program's log entries live.
// Flag changes are not broadcast.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aluo96078/hookwire"
	"github.com/aluo96078/hookwire/cmd/hookwiredemo/internal/tray"
	"github.com/aluo96078/hookwire/cmd/hookwiredemo/internal/wsdebug"
	"github.com/aluo96078/hookwire/event"
	"github.com/aluo96078/hookwire/internal/config"
)

var (
	version    = "0.1.0"
	programArg = flag.String("program", "", "path to a hotkey program JSON file (default: OS config dir)")
	listArg    = flag.Bool("list", false, "list the loaded program's entries and exit")
	showVer    = flag.Bool("version", false, "show version")
	debugPort  = flag.Int("debug-port", 18080, "port for the WebSocket debug console")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("hookwiredemo version %s\n", version)
		return
	}

	cfgMgr, err := config.NewManager()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *programArg != "" {
		data, err := os.ReadFile(*programArg)
		if err != nil {
			log.Fatalf("config: reading %s: %v", *programArg, err)
		}
		var p config.Program
		if err := json.Unmarshal(data, &p); err != nil {
			log.Fatalf("config: parsing %s: %v", *programArg, err)
		}
		cfgMgr.Set(&p)
	} else if err := cfgMgr.Load(); err != nil {
		log.Printf("config: failed to load, using defaults: %v", err)
	}
	if err := cfgMgr.Save(); err != nil {
		log.Printf("config: failed to persist: %v", err)
	}

	if *listArg {
		listEntries(cfgMgr.Get())
		return
	}

	ws := wsdebug.New()
	ws.Start()
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/debug", ws.Handler())
		addr := fmt.Sprintf(":%d", *debugPort)
		log.Printf("debug console listening on %s/debug", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("debug console: %v", err)
		}
	}()

	var firedCount int64
	prog, err := cfgMgr.Get().Compile(
		func(entry int, ev event.ButtonEvent) {
			firedCount++
			log.Printf("hotkey: entry %d pressed %s", entry, ev.Target)
			ws.BroadcastHotkeyFired(ev.Target.String(), "press", "dispatch", false, firedCount)
		},
		func(entry int, ev *event.ButtonEvent) {
			firedCount++
			target := "?"
			if ev != nil {
				target = ev.Target.String()
			}
			log.Printf("hotkey: entry %d released %s", entry, target)
			ws.BroadcastHotkeyFired(target, "release", "dispatch", false, firedCount)
		},
	)
	if err != nil {
		log.Fatalf("compile: %v", err)
	}

	engine, err := hookwire.Install(prog, 2)
	if err != nil {
		log.Fatalf("hookwire: install failed: %v", err)
	}
	log.Println("hookwire engine installed")

	t := tray.New("hookwire", "hookwiredemo debug console")
	t.AddMenuItem("Reload program from disk", func() {
		if err := cfgMgr.Load(); err != nil {
			log.Printf("config: reload failed: %v", err)
			return
		}
		log.Println("config: reloaded; restart hookwiredemo to apply it to the running engine")
	})
	t.AddSeparator()
	t.AddMenuItem("Quit", func() {
		t.Stop()
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutting down...")
		t.Stop()
	}()

	log.Println("hookwiredemo running, press Ctrl+C to stop")
	t.Run()

	if err := engine.Uninstall(); err != nil {
		log.Printf("hookwire: uninstall: %v", err)
	}
	ws.Close()
}

func listEntries(p *config.Program) {
	for i, e := range p.Entries {
		fmt.Printf("%d: %s targets=%v modifiers=%v without=%v dest=%s\n",
			i, e.Kind, e.Targets, e.Modifiers, e.WithoutModifiers, e.Dest)
	}
}
