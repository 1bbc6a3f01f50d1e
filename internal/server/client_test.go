package server

import (
	"sync"
	"testing"

	"github.com/vpenkov/belot-server/internal/protocol"
)

// Sends racing a close must never land on a closed channel; a send after
// close panics outright.
func TestClientSendRacingClose(t *testing.T) {
	c := &Client{ID: "p0", send: make(chan []byte, 4)}
	msg := protocol.MustNewMessage(protocol.MsgPong, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				c.SendMessage(msg)
			}
		}()
	}
	c.Close()
	wg.Wait()

	// Both are no-ops once closed.
	c.SendMessage(msg)
	c.Close()
}
