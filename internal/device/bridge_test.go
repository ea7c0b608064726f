package device

import (
	"sync"

	"github.com/go-drift/drift/pkg/platform"
)

type bridgeCall struct {
	channel string
	method  string
}

// recordingBridge answers every method call with a canned response and
// records the calls it receives.
type recordingBridge struct {
	mu       sync.Mutex
	calls    []bridgeCall
	response any
	err      error
	block    chan struct{}
}

func (b *recordingBridge) InvokeMethod(channel, method string, args []byte) ([]byte, error) {
	b.mu.Lock()
	b.calls = append(b.calls, bridgeCall{channel: channel, method: method})
	block := b.block
	b.mu.Unlock()
	if block != nil {
		<-block
	}
	if b.err != nil {
		return nil, b.err
	}
	return platform.DefaultCodec.Encode(b.response)
}

func (b *recordingBridge) StartEventStream(string) error { return nil }
func (b *recordingBridge) StopEventStream(string) error  { return nil }

func (b *recordingBridge) callCount(method string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if c.method == method {
			n++
		}
	}
	return n
}
