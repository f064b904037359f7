// Command fakecoord is a minimal stand-in coordination node for local
// development against cmd/zk-connect: it accepts TCP connections and writes
// the "ZKOK\n" banner that coordsession.NewTCPConstructor expects. Setting
// FAKECOORD_MODE=refuse (close at once), FAKECOORD_MODE=silent (stall) or
// FAKECOORD_MODE=garbage (wrong banner) makes the handshake fail, which the
// connection loop treats as a session-construction failure.
package main

import (
	"log"
	"net"
	"os"
	"strings"
	"time"
)

func main() {
	addr := ":2181"
	if v := strings.TrimSpace(os.Getenv("FAKECOORD_LISTEN")); v != "" {
		addr = v
	}
	mode := strings.ToLower(strings.TrimSpace(os.Getenv("FAKECOORD_MODE")))

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("listening on %s: %v", addr, err)
	}
	defer ln.Close()
	log.Printf("fakecoord listening on %s (mode=%q)", addr, mode)

	for {
		conn, err := ln.Accept()
		if err != nil {
			log.Printf("accept error: %v", err)
			continue
		}
		go handle(conn, mode)
	}
}

func handle(conn net.Conn, mode string) {
	defer conn.Close()
	switch mode {
	case "refuse":
		return
	case "silent":
		time.Sleep(time.Hour)
		return
	case "garbage":
		_, _ = conn.Write([]byte("NOPE\n"))
		return
	default:
		_, _ = conn.Write([]byte("ZKOK\n"))
		buf := make([]byte, 1)
		_, _ = conn.Read(buf)
	}
}
